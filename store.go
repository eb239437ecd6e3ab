package forecast

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Store loads edition tables from an ordered list of sources.
type Store struct {
	sources []Source
}

// NewStore returns a Store querying sources in order.
func NewStore(sources ...Source) *Store {
	return &Store{sources: sources}
}

// Load returns the table of the named edition from the first source holding it.
//
// Sources reporting ErrEditionNotFound are skipped, any other error stops the lookup.
// If no source holds the edition, Load returns an *EditionNotFoundError.
func (s *Store) Load(edition string) (*Table, error) {
	for i, src := range s.sources {
		t, err := src.Load(edition)
		if errors.Is(err, ErrEditionNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cannot load edition %q: %w", edition, err)
		}
		log.Debug().Str("edition", edition).Int("source", i).Int("values", t.Len()).Msg("edition loaded")
		return t, nil
	}
	return nil, &EditionNotFoundError{Edition: edition}
}

// Open loads the named edition and returns a read-only accessor over it.
func (s *Store) Open(edition string) (*Forecast, error) {
	t, err := s.Load(edition)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// Editions returns the editions known to the sources implementing Lister, in
// chronological order. An edition listed by several sources is reported once, as
// described by the first of them.
func (s *Store) Editions() ([]Edition, error) {
	var list []Edition
	seen := make(map[string]bool)
	var errs error
	for _, src := range s.sources {
		lister, ok := src.(Lister)
		if !ok {
			continue
		}
		editions, err := lister.Editions()
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		for _, e := range editions {
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			list = append(list, e)
		}
	}
	SortEditions(list)
	return list, errs
}
