package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/etnz/forecast/date"
)

// recordWriter builds one JSONL record: a JSON object whose fields keep their
// insertion order. Its zero value is ready to use.
type recordWriter struct {
	buf bytes.Buffer
	err error
}

func (w *recordWriter) key(k string) {
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	kb, _ := json.Marshal(k)
	w.buf.Write(kb)
	w.buf.WriteByte(':')
}

// Str appends a string field.
func (w *recordWriter) Str(k, v string) *recordWriter {
	if w.err != nil {
		return w
	}
	vb, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot write %q: %w", k, err)
		return w
	}
	w.key(k)
	w.buf.Write(vb)
	return w
}

// Int appends an integer field.
func (w *recordWriter) Int(k string, v int) *recordWriter {
	if w.err != nil {
		return w
	}
	w.key(k)
	w.buf.WriteString(strconv.Itoa(v))
	return w
}

// Number appends a numeric field. JSON has no NaN nor infinities.
func (w *recordWriter) Number(k string, v float64) *recordWriter {
	if w.err != nil {
		return w
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.err = fmt.Errorf("cannot write %q: %v is not a JSON number", k, v)
		return w
	}
	w.key(k)
	w.buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	return w
}

// Date appends a date field, unless the date is zero.
func (w *recordWriter) Date(k string, d date.Date) *recordWriter {
	if d.IsZero() {
		return w
	}
	return w.Str(k, d.String())
}

// WriteTo writes the record followed by a newline.
func (w *recordWriter) WriteTo(out io.Writer) (int64, error) {
	if w.err != nil {
		return 0, w.err
	}
	line := make([]byte, 0, w.buf.Len()+3)
	line = append(line, '{')
	line = append(line, w.buf.Bytes()...)
	line = append(line, '}', '\n')
	n, err := out.Write(line)
	return int64(n), err
}
