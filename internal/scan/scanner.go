package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// transcriptExts are the extensions treated as plaintext transcripts.
var transcriptExts = map[string]bool{".txt": true, ".log": true}

// ScanRoot walks root for transcript files, in path order. Hidden
// directories are not entered. A missing root yields no files.
func ScanRoot(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if path != root && strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !transcriptExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && os.IsNotExist(err) {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}
