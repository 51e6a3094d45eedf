package tui

// Geometry of the two panes. The list takes listShare percent of the
// terminal width; the rest goes to the profile.
const (
	listShare  = 30
	minPaneW   = 20
	minPanelH  = 5
	chromeRows = 6 // filter row, status bar, top and bottom borders of both panels
)

type layout struct {
	listW, previewW, panelH int
}

func computeLayout(width, height int) layout {
	l := layout{listW: 30, previewW: 70, panelH: 20}
	if width > 0 {
		l.listW = max(width*listShare/100-4, minPaneW)
		l.previewW = max(width*(100-listShare)/100-4, minPaneW)
	}
	if height > 0 {
		l.panelH = max(height-chromeRows, minPanelH)
	}
	return l
}

func (m model) layout() layout {
	return computeLayout(m.width, m.height)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hit maps a terminal cell to the pane under it and, for the list, the
// index of the speaker row given the current scroll offset.
func (l layout) hit(x, y, listOffset int) (mouseRegion, int) {
	top := 2 // filter row + top border
	if y < top || y >= top+l.panelH {
		return regionNone, -1
	}

	// col 0 is the list's left border, its right border is at listW+1
	switch {
	case x >= 1 && x <= l.listW:
		return regionList, listOffset + (y-top)/linesPerItem
	case x > l.listW+2:
		return regionPreview, -1
	}
	return regionNone, -1
}
