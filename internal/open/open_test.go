package open

import (
	"reflect"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"vim", []string{"vim", "+12", "chat.txt"}},
		{"/usr/bin/nvim", []string{"/usr/bin/nvim", "+12", "chat.txt"}},
		{"code", []string{"code", "--goto", "chat.txt:12"}},
		{"less", []string{"less", "+12", "chat.txt"}},
		{"nano", []string{"nano", "+12", "chat.txt"}},
		{"emacs", []string{"emacs", "chat.txt"}},
	}

	for _, tt := range tests {
		cmd := editorCommand(tt.editor, "chat.txt", 12)
		if !reflect.DeepEqual(cmd.Args, tt.want) {
			t.Errorf("editorCommand(%q) args = %v, want %v", tt.editor, cmd.Args, tt.want)
		}
	}
}

func TestEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	if got := Editor(); got != "less" {
		t.Errorf("Editor() = %q, want less", got)
	}
	t.Setenv("EDITOR", "vim")
	if got := Editor(); got != "vim" {
		t.Errorf("Editor() = %q, want vim", got)
	}
}
