package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fluxbio/sbmlio/internal/model"
)

func testModel(id, name string) *model.Model {
	m := model.New()
	m.ID = id
	m.Name = name
	m.Species["M_a"] = &model.Species{Compartment: "c"}
	m.Reactions["R1"] = model.NewReaction()
	m.Reactions["R2"] = model.NewReaction()
	return m
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestSaveAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	document := []byte(`<sbml level="3" version="2"/>`)

	id, err := s.Save(ctx, testModel("toy", "Toy"), document)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned an empty record id")
	}

	rec, doc, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if rec.ModelID != "toy" || rec.Name != "Toy" {
		t.Errorf("unexpected record identity: %q %q", rec.ModelID, rec.Name)
	}
	if rec.Species != 1 || rec.Reactions != 2 {
		t.Errorf("unexpected counts: species=%d reactions=%d", rec.Species, rec.Reactions)
	}
	if !bytes.Equal(doc, document) {
		t.Error("stored document does not match original")
	}
	if rec.ImportedAt.IsZero() {
		t.Error("imported_at was not recorded")
	}
}

func TestGet_UnknownID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	_, _, err = s.Get(context.Background(), "nope")
	if err == nil {
		t.Fatal("Get() with unknown id should fail")
	}
	if !strings.Contains(err.Error(), "no cataloged model") {
		t.Errorf("unexpected error for unknown id: %v", err)
	}
}

func TestList_ReturnsAllRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.Save(ctx, testModel(name, name), []byte("<sbml/>")); err != nil {
			t.Fatalf("Save(%q) failed: %v", name, err)
		}
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(records))
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.ModelID] = true
	}
	for _, name := range []string{"first", "second", "third"} {
		if !seen[name] {
			t.Errorf("record %q missing from listing", name)
		}
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ctx := context.Background()
	id, err := s.Save(ctx, testModel("toy", "Toy"), []byte("<sbml/>"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	rec, _, err := s2.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if rec.ModelID != "toy" {
		t.Errorf("got model id %q, want %q", rec.ModelID, "toy")
	}
}
