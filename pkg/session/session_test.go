package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateRunID(t *testing.T) {
	before := time.Now().Add(-time.Second)
	a := GenerateRunID()
	b := GenerateRunID()

	if a == b {
		t.Fatalf("GenerateRunID() returned duplicate %s", a)
	}
	if len(a) != 26 {
		t.Errorf("run ID %q has length %d, want 26", a, len(a))
	}

	created, err := RunCreatedAt(a)
	if err != nil {
		t.Fatalf("RunCreatedAt() error = %v", err)
	}
	if created.Before(before) || created.After(time.Now().Add(time.Second)) {
		t.Errorf("RunCreatedAt() = %v, want about now", created)
	}

	if _, err := RunCreatedAt("not-a-ulid"); err == nil {
		t.Error("RunCreatedAt() should reject invalid IDs")
	}
}

func TestEnsureRunDir(t *testing.T) {
	base := t.TempDir()
	id := GenerateRunID()

	dir, err := EnsureRunDir(base, id)
	if err != nil {
		t.Fatalf("EnsureRunDir() error = %v", err)
	}
	if dir != filepath.Join(base, "runs", id) {
		t.Errorf("EnsureRunDir() = %s", dir)
	}
	if RunExists(base, id) {
		t.Error("RunExists() = true before a summary was written")
	}

	if err := os.WriteFile(filepath.Join(dir, "summary.yaml"), []byte("run_id: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !RunExists(base, id) {
		t.Error("RunExists() = false after the summary was written")
	}
}

func TestUpdateRunIndex(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")

	index, err := LoadRunIndex(base)
	if err != nil {
		t.Fatalf("LoadRunIndex() on missing file error = %v", err)
	}
	if len(index.Runs) != 0 {
		t.Fatalf("LoadRunIndex() = %d runs, want 0", len(index.Runs))
	}

	ids := []string{"01HQ0000000000000000000001", "01HQ0000000000000000000003", "01HQ0000000000000000000002"}
	for _, id := range ids {
		if err := UpdateRunIndex(base, RunInfo{RunID: id, Records: 1}); err != nil {
			t.Fatalf("UpdateRunIndex(%s) error = %v", id, err)
		}
	}

	// Updating an existing run replaces it in place.
	if err := UpdateRunIndex(base, RunInfo{RunID: ids[0], Records: 42}); err != nil {
		t.Fatalf("UpdateRunIndex() update error = %v", err)
	}

	index, err = LoadRunIndex(base)
	if err != nil {
		t.Fatalf("LoadRunIndex() error = %v", err)
	}

	want := []string{ids[1], ids[2], ids[0]}
	if len(index.Runs) != len(want) {
		t.Fatalf("index has %d runs, want %d", len(index.Runs), len(want))
	}
	for i, r := range index.Runs {
		if r.RunID != want[i] {
			t.Errorf("Runs[%d] = %s, want %s", i, r.RunID, want[i])
		}
	}
	if index.Runs[2].Records != 42 {
		t.Errorf("updated run records = %d, want 42", index.Runs[2].Records)
	}
}

func TestGetLabelPreview(t *testing.T) {
	tests := []struct {
		labels []string
		n      int
		want   int
	}{
		{[]string{"0", "2", "4", "6"}, 3, 3},
		{[]string{"0"}, 3, 1},
		{nil, 3, 0},
	}

	for _, tt := range tests {
		if got := GetLabelPreview(tt.labels, tt.n); len(got) != tt.want {
			t.Errorf("GetLabelPreview(%v, %d) = %v, want %d labels", tt.labels, tt.n, got, tt.want)
		}
	}
}

func TestRemoveRun(t *testing.T) {
	base := t.TempDir()
	keep, drop := "01HQ0000000000000000000001", "01HQ0000000000000000000002"
	for _, id := range []string{keep, drop} {
		dir, err := EnsureRunDir(base, id)
		if err != nil {
			t.Fatalf("EnsureRunDir() error = %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "summary.yaml"), []byte("run_id: x\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := UpdateRunIndex(base, RunInfo{RunID: id}); err != nil {
			t.Fatalf("UpdateRunIndex() error = %v", err)
		}
	}

	indexed, err := RemoveRun(base, drop)
	if err != nil {
		t.Fatalf("RemoveRun() error = %v", err)
	}
	if !indexed {
		t.Error("RemoveRun() = false for an indexed run")
	}
	if RunExists(base, drop) {
		t.Error("removed run still exists")
	}
	if !RunExists(base, keep) {
		t.Error("RemoveRun() removed the wrong run")
	}

	index, err := LoadRunIndex(base)
	if err != nil {
		t.Fatalf("LoadRunIndex() error = %v", err)
	}
	if len(index.Runs) != 1 || index.Runs[0].RunID != keep {
		t.Errorf("index after removal = %+v, want only %s", index.Runs, keep)
	}

	indexed, err = RemoveRun(base, drop)
	if err != nil {
		t.Fatalf("second RemoveRun() error = %v", err)
	}
	if indexed {
		t.Error("second RemoveRun() = true, want false")
	}
}
