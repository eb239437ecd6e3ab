package forecast

import (
	"errors"
	"testing"

	"github.com/etnz/forecast/date"
)

// failingSource fails every load with err.
type failingSource struct{ err error }

func (s failingSource) Load(string) (*Table, error) { return nil, s.err }

func TestStoreOpen(t *testing.T) {
	nov := newTable(t, "november-2025", date.New(2025, 11, 26), map[Metric]map[int]float64{CPI: {2025: 3.45}})
	store := NewStore(NewMemorySource(nov))

	f, err := store.Open("november-2025")
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if v, err := f.Get(CPI, 2025); err != nil || v != 3.45 {
		t.Errorf("Get(cpi, 2025) = %v, %v want 3.45, nil", v, err)
	}

	_, err = store.Open("june-2010")
	var notFound *EditionNotFoundError
	if !errors.As(err, &notFound) || notFound.Edition != "june-2010" {
		t.Errorf("Open(june-2010) error = %v want EditionNotFoundError for june-2010", err)
	}
}

func TestStoreFallsThrough(t *testing.T) {
	first := NewMemorySource(newTable(t, "march-2025", date.New(2025, 3, 26), map[Metric]map[int]float64{CPI: {2025: 3.21}}))
	second := NewMemorySource(
		newTable(t, "march-2025", date.New(2025, 3, 26), map[Metric]map[int]float64{CPI: {2025: 9.99}}),
		newTable(t, "november-2025", date.New(2025, 11, 26), map[Metric]map[int]float64{CPI: {2025: 3.45}}),
	)
	store := NewStore(first, second)

	tbl, err := store.Load("march-2025")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := tbl.Lookup(CPI, 2025); v != 3.21 {
		t.Errorf("Load(march-2025) cpi 2025 = %v want 3.21 from the first source", v)
	}
	if _, err := store.Load("november-2025"); err != nil {
		t.Errorf("Load(november-2025) unexpected error: %v", err)
	}
}

func TestStoreStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	store := NewStore(failingSource{boom}, NewMemorySource(NewTable(EditionFromName("march-2025"))))
	_, err := store.Load("march-2025")
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v want %v", err, boom)
	}
	if errors.Is(err, ErrEditionNotFound) {
		t.Errorf("Load() error = %v must not be reported as not found", err)
	}
}

func TestStoreEditions(t *testing.T) {
	store := NewStore(
		NewMemorySource(NewTable(NewEdition("november-2025", date.New(2025, 11, 26)))),
		failingSource{errors.New("not a lister")},
		NewMemorySource(
			NewTable(NewEdition("march-2025", date.New(2025, 3, 26))),
			NewTable(NewEdition("november-2025", date.Date{})),
		),
	)
	list, err := store.Editions()
	if err != nil {
		t.Fatalf("Editions() unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Editions() = %v want 2 editions", list)
	}
	if list[0].Name() != "march-2025" || list[1].Name() != "november-2025" {
		t.Errorf("Editions() = %v want [march-2025 november-2025]", list)
	}
	if list[1].Published() != date.New(2025, 11, 26) {
		t.Errorf("Editions()[1].Published() = %v want the first source's date", list[1].Published())
	}
}

func TestMemorySourceReturnsCopies(t *testing.T) {
	src := NewMemorySource(NewTable(EditionFromName("march-2025")))
	tbl, err := src.Load("march-2025")
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.Set(CPI, 2025, 1); err != nil {
		t.Fatal(err)
	}
	again, _ := src.Load("march-2025")
	if again.Len() != 0 {
		t.Errorf("MemorySource.Load() shares its tables, Len() = %d want 0", again.Len())
	}
}
