package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanRoot(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"a.txt",
		"sub/b.LOG",
		"sub/notes.md",
		".hidden/c.txt",
	} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanRoot(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files: %+v", len(files), files)
	}
	if files[0].Path != filepath.Join(root, "a.txt") || files[1].Path != filepath.Join(root, "sub", "b.LOG") {
		t.Errorf("unexpected files: %+v", files)
	}
	if files[0].Size != 1 || files[0].Mtime == 0 {
		t.Errorf("unexpected info: %+v", files[0])
	}
}

func TestScanRootMissing(t *testing.T) {
	files, err := ScanRoot(filepath.Join(t.TempDir(), "missing"))
	if err != nil || len(files) != 0 {
		t.Errorf("files=%v err=%v", files, err)
	}
}
