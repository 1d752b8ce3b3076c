package models

import (
	"errors"
	"testing"
)

func sampleDataset() *Dataset {
	return &Dataset{
		Columns: []string{"text", "sentiment"},
		Records: []Record{
			{"text": "a", "sentiment": "0"},
			{"text": "b", "sentiment": "4"},
			{"text": "c", "sentiment": "0"},
		},
	}
}

func TestRecordGet(t *testing.T) {
	r := Record{"text": "", "sentiment": "4"}

	if v, err := r.Get("text"); err != nil || v != "" {
		t.Errorf("Get(text) = %q, %v; want empty value and no error", v, err)
	}

	_, err := r.Get("missing")
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("Get(missing) error = %v, want *MissingColumnError", err)
	}
	if mc.Column != "missing" || mc.Index != -1 {
		t.Errorf("MissingColumnError = %+v, want column missing and index -1", mc)
	}
}

func TestNewDatasetSortsColumns(t *testing.T) {
	ds := NewDataset(Record{"text": "x", "id": "1", "sentiment": "0"})
	want := []string{"id", "sentiment", "text"}
	for i, col := range want {
		if ds.Columns[i] != col {
			t.Errorf("Columns[%d] = %s, want %s", i, ds.Columns[i], col)
		}
	}

	if empty := NewDataset(); empty.Len() != 0 || len(empty.Columns) != 0 {
		t.Errorf("NewDataset() = %+v, want empty", empty)
	}
}

func TestHeadTailClamp(t *testing.T) {
	ds := sampleDataset()

	tests := []struct {
		name string
		got  []Record
		want []string
	}{
		{"head 2", ds.Head(2), []string{"a", "b"}},
		{"head 10", ds.Head(10), []string{"a", "b", "c"}},
		{"head 0", ds.Head(0), nil},
		{"tail 2", ds.Tail(2), []string{"b", "c"}},
		{"tail 10", ds.Tail(10), []string{"a", "b", "c"}},
		{"tail negative", ds.Tail(-1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(tt.got), len(tt.want))
			}
			for i, r := range tt.got {
				if r["text"] != tt.want[i] {
					t.Errorf("record %d text = %s, want %s", i, r["text"], tt.want[i])
				}
			}
		})
	}
}

func TestLookupReportsIndex(t *testing.T) {
	ds := sampleDataset()
	delete(ds.Records[1], "text")

	_, err := ds.Lookup(1, "text")
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("Lookup error = %v, want *MissingColumnError", err)
	}
	if mc.Index != 1 {
		t.Errorf("Index = %d, want 1", mc.Index)
	}
}

func TestAddColumn(t *testing.T) {
	ds := sampleDataset()

	if err := ds.AddColumn("language", []string{"en", "es", "en"}); err != nil {
		t.Fatalf("AddColumn() error = %v", err)
	}
	if got := ds.Columns[len(ds.Columns)-1]; got != "language" {
		t.Errorf("last column = %s, want language", got)
	}
	if ds.Records[1]["language"] != "es" {
		t.Errorf("record 1 language = %s, want es", ds.Records[1]["language"])
	}

	// Overwriting keeps a single header entry.
	if err := ds.AddColumn("language", []string{"x", "y", "z"}); err != nil {
		t.Fatalf("AddColumn() overwrite error = %v", err)
	}
	if len(ds.Columns) != 3 {
		t.Errorf("Columns = %v, want 3 entries", ds.Columns)
	}

	if err := ds.AddColumn("bad", []string{"only one"}); err == nil {
		t.Error("AddColumn() with wrong length should fail")
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	ds := sampleDataset()
	kept := ds.Filter(func(r Record) bool { return r["sentiment"] == "0" })

	if kept.Len() != 2 || kept.Records[0]["text"] != "a" || kept.Records[1]["text"] != "c" {
		t.Errorf("Filter() = %+v, want records a and c", kept.Records)
	}
	if ds.Len() != 3 {
		t.Errorf("Filter() modified the source dataset")
	}
	kept.Columns[0] = "changed"
	if ds.Columns[0] != "text" {
		t.Errorf("Filter() shares the column slice with the source")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&MissingColumnError{Column: "text", Index: -1}, `missing column "text"`},
		{&MissingColumnError{Column: "text", Index: 3}, `record 3: missing column "text"`},
		{&MalformedInputError{Source: "in.csv", Line: 4, Err: errors.New("wrong number of fields")}, "malformed input in.csv (line 4): wrong number of fields"},
		{&SchemaMismatchError{Index: 2, Column: "extra", Reason: "is not in the header"}, `record 2: column "extra" is not in the header`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
