package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendToFile(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "out.txt")
	if err := AppendToFile(savePath, "a", "b"); err != nil {
		t.Fatalf("append failed: %s", err)
	}
	if err := AppendToFile(savePath, "c"); err != nil {
		t.Fatalf("append failed: %s", err)
	}
	bs, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("read failed: %s", err)
	}
	if string(bs) != "a\nb\nc\n" {
		t.Errorf("unexpected content %q", string(bs))
	}
}

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure dir failed: %s", err)
	}
	savePath := filepath.Join(dir, "out.json")
	if err := WriteJSON(savePath, map[string]int{"iterations": 30}); err != nil {
		t.Fatalf("write failed: %s", err)
	}
	bs, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("read failed: %s", err)
	}
	if string(bs) != "{\n  \"iterations\": 30\n}\n" {
		t.Errorf("unexpected content %q", string(bs))
	}
}
