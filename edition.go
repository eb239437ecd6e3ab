package forecast

import (
	"slices"
	"strings"

	"github.com/etnz/forecast/date"
)

// Edition identifies one forecast publication, for instance the OBR November 2025 outlook.
type Edition struct {
	name      string
	published date.Date
}

// NewEdition returns an edition named name and published on published.
func NewEdition(name string, published date.Date) Edition {
	return Edition{name: name, published: published}
}

// EditionFromName returns an edition whose publication date is derived from a
// "<month>-<year>" name, the first day of that month. Names that are not month
// labels get a zero publication date.
func EditionFromName(name string) Edition {
	published, _ := date.ParseMonth(name)
	return Edition{name: name, published: published}
}

// Name returns the edition identifier.
func (e Edition) Name() string { return e.name }

// Published returns the publication date, possibly zero when unknown.
func (e Edition) Published() date.Date { return e.published }

func (e Edition) String() string { return e.name }

// Compare orders editions chronologically, then by name.
func (e Edition) Compare(x Edition) int {
	if c := e.published.Compare(x.published); c != 0 {
		return c
	}
	return strings.Compare(e.name, x.name)
}

// SortEditions sorts editions chronologically, oldest first.
func SortEditions(editions []Edition) {
	slices.SortFunc(editions, Edition.Compare)
}
