package golabel

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sliceSource struct {
	records []Record
	err     error
}

func (s sliceSource) Records() ([]Record, error) { return s.records, s.err }

func testGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	r, p := testRenderer(t, "classic")
	dir := t.TempDir()
	return &Generator{
		Profile:  p,
		Renderer: r,
		OutDir:   dir,
		Logger:   log.New(io.Discard, "", 0),
	}, dir
}

func TestGeneratorRun(t *testing.T) {
	gen, dir := testGenerator(t)

	succeeded, failed, err := gen.Run(sliceSource{records: []Record{
		{Name: "Toast Bread", Price: "45,000", Index: 2},
		{Name: "Bad Price", Price: "n/a", Index: 3},
		{Name: "Milk", Price: "32000", Index: 4},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if succeeded != 2 || failed != 1 {
		t.Fatalf("succeeded = %d, failed = %d, want 2, 1", succeeded, failed)
	}

	for _, name := range []string{"Toast_Bread.jpg", "Milk.jpg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "Bad_Price.jpg")); err == nil {
		t.Error("skipped row produced an output file")
	}
}

func TestGeneratorPersianNameEndToEnd(t *testing.T) {
	p, _ := LookupProfile("classic")
	r, err := NewRenderer(p, testFaces(), PersianShaper{})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	gen := &Generator{
		Profile:  p,
		Renderer: r,
		OutDir:   dir,
		Logger:   log.New(io.Discard, "", 0),
	}

	succeeded, failed, err := gen.Run(sliceSource{records: []Record{
		{Name: "نان باگت فرانسوی", Price: "45000", Index: 2},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if succeeded != 1 || failed != 0 {
		t.Fatalf("succeeded = %d, failed = %d", succeeded, failed)
	}

	name := "نان_باگت_فرانسوی.jpg"
	if strings.ContainsAny(name, `/\*?`) {
		t.Fatalf("output name %q contains separator or glob characters", name)
	}
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestGeneratorSourceErrorAborts(t *testing.T) {
	gen, _ := testGenerator(t)

	_, _, err := gen.Run(sliceSource{err: fmt.Errorf("boom")})
	if err == nil {
		t.Fatal("expected source error to abort the run")
	}
}

func TestGeneratorNamelessRowGetsFallbackName(t *testing.T) {
	gen, dir := testGenerator(t)

	// A name of only separators cleans to an empty stem.
	succeeded, _, err := gen.Run(sliceSource{records: []Record{
		{Name: "///", Price: "100", Index: 7},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", succeeded)
	}
	if _, err := os.Stat(filepath.Join(dir, "label_7.jpg")); err != nil {
		t.Errorf("fallback-named output missing: %v", err)
	}
}
