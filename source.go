package forecast

// Source yields the structured values of an edition.
//
// A Source that does not hold the requested edition returns an error matching
// ErrEditionNotFound, so that a Store can fall through to the next source.
type Source interface {
	Load(edition string) (*Table, error)
}

// Lister is implemented by sources able to enumerate their editions.
type Lister interface {
	Editions() ([]Edition, error)
}

// MemorySource serves tables held in memory, keyed by edition name.
type MemorySource map[string]*Table

// NewMemorySource returns a source serving the given tables.
func NewMemorySource(tables ...*Table) MemorySource {
	s := make(MemorySource, len(tables))
	for _, t := range tables {
		s[t.Edition().Name()] = t
	}
	return s
}

// Load returns a copy of the table registered for edition.
func (s MemorySource) Load(edition string) (*Table, error) {
	t, ok := s[edition]
	if !ok {
		return nil, &EditionNotFoundError{Edition: edition}
	}
	return t.Clone(), nil
}

// Editions returns the registered editions in chronological order.
func (s MemorySource) Editions() ([]Edition, error) {
	list := make([]Edition, 0, len(s))
	for _, t := range s {
		list = append(list, t.Edition())
	}
	SortEditions(list)
	return list, nil
}
