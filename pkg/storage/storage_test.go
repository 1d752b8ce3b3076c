package storage

import (
	"path/filepath"
	"testing"
)

func TestSaveAndReadFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")

	if s.HasFile(path) {
		t.Fatal("HasFile() = true before saving")
	}
	if err := s.SaveFile(path, []byte("hello")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Error("HasFile() = false after saving")
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile() = %q, want hello", data)
	}
}

func TestEnsureDir(t *testing.T) {
	s := &Storage{}
	dir := filepath.Join(t.TempDir(), "x", "y")

	for i := 0; i < 2; i++ {
		if err := s.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() call %d error = %v", i, err)
		}
	}
	if !s.HasFile(dir) {
		t.Error("directory was not created")
	}
	if err := s.EnsureDir(""); err != nil {
		t.Errorf("EnsureDir(\"\") error = %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	s := &Storage{}
	dir := filepath.Join(t.TempDir(), "run")
	if err := s.SaveFile(filepath.Join(dir, "plots", "a.png"), []byte("x")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.RemoveAll(dir); err != nil {
			t.Fatalf("RemoveAll() call %d error = %v", i, err)
		}
	}
	if s.HasFile(dir) {
		t.Error("directory still present after RemoveAll()")
	}
}

func TestReadFile_Missing(t *testing.T) {
	s := &Storage{}
	if _, err := s.ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadFile() on a missing file should fail")
	}
}
