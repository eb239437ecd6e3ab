package forecast

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/forecast/date"
	"github.com/rs/zerolog/log"
)

// This file persists tables as JSONL, in a way that is still human-readable and git-friendly.
//
// The first line describes the edition, each following line holds the values of one year:
//
//	{"edition":"november-2025","published":"2025-11-26"}
//	{"year":2025,"cpi":3.45,"rpi":4.33}
//	{"year":2026,"cpi":2.48,"rpi":3.71}

const (
	attrEdition   = "edition"
	attrPublished = "published"
	attrYear      = "year"
	tableExt      = ".jsonl"
)

// jheader is the first line of an encoded table.
type jheader struct {
	Edition   string    `json:"edition"`
	Published date.Date `json:"published"`
}

// EncodeTable writes t as JSONL to w. Years are written in ascending order and metrics
// in canonical order, so that the output is stable.
func EncodeTable(w io.Writer, t *Table) error {
	var header recordWriter
	header.Str(attrEdition, t.Edition().Name()).Date(attrPublished, t.Edition().Published())
	if _, err := header.WriteTo(w); err != nil {
		return fmt.Errorf("persist error: cannot write header of %q: %w", t.Edition().Name(), err)
	}

	for _, year := range t.AllYears() {
		var rec recordWriter
		rec.Int(attrYear, year)
		for _, m := range metrics {
			if v, ok := t.Lookup(m, year); ok {
				rec.Number(string(m), v)
			}
		}
		if _, err := rec.WriteTo(w); err != nil {
			return fmt.Errorf("persist error: cannot write year %d of %q: %w", year, t.Edition().Name(), err)
		}
	}
	return nil
}

// DecodeTable reads a table written by EncodeTable.
func DecodeTable(r io.Reader) (*Table, error) {
	var t *Table
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := strings.TrimSpace(scanner.Text())
		// Start simply ignoring empty lines.
		if line == "" {
			continue
		}
		if t == nil {
			var h jheader
			if err := json.Unmarshal([]byte(line), &h); err != nil {
				return nil, fmt.Errorf("parse error line %d: invalid header: %w", i, err)
			}
			if h.Edition == "" {
				return nil, fmt.Errorf("parse error line %d: missing the property %q", i, attrEdition)
			}
			t = NewTable(NewEdition(h.Edition, h.Published))
			continue
		}
		if err := decodeYear(t, i, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	if t == nil {
		return nil, errors.New("parse error: missing header line")
	}
	return t, nil
}

// decodeYear decodes the values of a single year into t.
func decodeYear(t *Table, i int, line string) error {
	jobj := make(map[string]any)
	if err := json.Unmarshal([]byte(line), &jobj); err != nil {
		return fmt.Errorf("parse error line %d: not a correct json: %w", i, err)
	}

	jyear, ok := jobj[attrYear].(float64)
	if !ok {
		return fmt.Errorf("parse error line %d: missing the numeric property %q", i, attrYear)
	}
	if jyear != math.Trunc(jyear) {
		return fmt.Errorf("parse error line %d: property %q must be an integer", i, attrYear)
	}
	year := int(jyear)

	// Read all other attributes as (metric, value) pairs.
	for name, jvalue := range jobj {
		if name == attrYear {
			continue
		}
		m, err := ParseMetric(name)
		if err != nil {
			return fmt.Errorf("parse error line %d: %w", i, err)
		}
		v, ok := jvalue.(float64)
		if !ok {
			return fmt.Errorf("parse error line %d: property %q must be of type 'number'", i, name)
		}
		if err := t.Set(m, year, v); err != nil {
			return fmt.Errorf("parse error line %d: %w", i, err)
		}
	}
	return nil
}

// DirSource serves tables stored as <edition>.jsonl files in a directory.
type DirSource struct {
	Dir string
}

// filename returns the file holding edition, or false if the name cannot be a file name.
func (s DirSource) filename(edition string) (string, bool) {
	if edition == "" || edition != filepath.Base(edition) || strings.HasPrefix(edition, ".") {
		return "", false
	}
	return filepath.Join(s.Dir, edition+tableExt), true
}

// Load reads the table of edition from the directory.
func (s DirSource) Load(edition string) (*Table, error) {
	filename, ok := s.filename(edition)
	if !ok {
		return nil, &EditionNotFoundError{Edition: edition}
	}
	t, err := loadTableFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &EditionNotFoundError{Edition: edition}
	}
	if err != nil {
		return nil, err
	}
	if got := t.Edition().Name(); got != edition {
		return nil, fmt.Errorf("file %q holds edition %q, not %q", filename, got, edition)
	}
	return t, nil
}

// Editions lists the editions stored in the directory. A missing directory holds none.
func (s DirSource) Editions() ([]Edition, error) {
	filenames, err := filepath.Glob(filepath.Join(s.Dir, "*"+tableExt))
	if err != nil {
		return nil, fmt.Errorf("cannot scan folder %q: %w", s.Dir, err)
	}
	var list []Edition
	for _, filename := range filenames {
		t, err := loadTableFile(filename)
		if err != nil {
			return nil, err
		}
		list = append(list, t.Edition())
	}
	SortEditions(list)
	return list, nil
}

func loadTableFile(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", filename, err)
	}
	return t, nil
}

// SaveTable writes t into dir as <edition>.jsonl, creating dir if needed.
func SaveTable(dir string, t *Table) error {
	filename, ok := DirSource{Dir: dir}.filename(t.Edition().Name())
	if !ok {
		return fmt.Errorf("cannot save edition with invalid name %q", t.Edition().Name())
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", dir, err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error opening file %q for writing: %w", filename, err)
	}
	defer file.Close()

	if err := EncodeTable(file, t); err != nil {
		return err
	}
	log.Info().Str("file", filename).Int("values", t.Len()).Msg("edition saved")
	return nil
}
