// Package tsv reads and writes score tables in the tab-separated layout used
// for example data: a header line naming the dimensions, then one
// name<TAB>v1<TAB>...<TAB>vN line per item.
package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
)

// MaxLineBytes is the longest line Read accepts.
const MaxLineBytes = 1 << 20

// DefaultFields is the number of score columns read per row when none is set.
const DefaultFields = 4

// InferFields tells Read to take the score width from the header line.
const InferFields = -1

var (
	ErrMalformedRow = errors.New("malformed row")
	ErrNoHeader     = errors.New("missing header line")
)

// ParseError reports a row that could not be parsed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedRow, e.Err} }

// ReadOptions controls how rows are parsed.
type ReadOptions struct {
	// Fields is the number of score columns after the name. Zero means
	// DefaultFields and InferFields uses the header width. Extra columns
	// on a row are ignored.
	Fields int
}

// Table is a parsed score file.
type Table struct {
	// Header holds the dimension labels, without the name column.
	Header  []string
	Dataset *pareto.Dataset
}

// Read parses a score table from r. Rows keep file order.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var (
		table  = &Table{}
		items  []pareto.Datum
		fields = opts.Fields
		line   int
		seen   bool
	)
	if fields == 0 {
		fields = DefaultFields
	}

	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cols := strings.Split(text, "\t")

		if !seen {
			seen = true
			if len(cols) > 1 {
				table.Header = cols[1:]
			}
			if fields == InferFields {
				fields = len(table.Header)
			}
			if fields < 1 {
				return nil, rowError(sc, &ParseError{Line: line, Err: fmt.Errorf("header declares no score columns")})
			}
			continue
		}

		if len(cols) < fields+1 {
			return nil, rowError(sc, &ParseError{Line: line, Err: fmt.Errorf("want %d scores, got %d", fields, len(cols)-1)})
		}
		name := strings.TrimSpace(cols[0])
		if name == "" {
			return nil, rowError(sc, &ParseError{Line: line, Err: pareto.ErrEmptyName})
		}
		scores := make(pareto.Scores, fields)
		for i := range scores {
			v, err := strconv.ParseFloat(strings.TrimSpace(cols[i+1]), 64)
			if err != nil {
				return nil, rowError(sc, &ParseError{Line: line, Err: fmt.Errorf("%s column %d: %w", name, i+1, err)})
			}
			scores[i] = v
		}
		items = append(items, pareto.Datum{Name: name, Scores: scores})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: line + 1, Err: fmt.Errorf("line longer than %d bytes", MaxLineBytes)}
		}
		return nil, readError(err)
	}
	if !seen {
		return nil, ErrNoHeader
	}

	ds, err := pareto.NewDataset(items)
	if err != nil {
		return nil, err
	}
	if len(table.Header) > fields {
		table.Header = table.Header[:fields]
	}
	table.Dataset = ds
	return table, nil
}

func readError(err error) error { return fmt.Errorf("reading scores: %w", err) }

// rowError prefers a pending read failure over pe. The scanner hands out the
// partial last line of a failed read, and that line is not a malformed row.
func rowError(sc *bufio.Scanner, pe *ParseError) error {
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return readError(err)
	}
	return pe
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write prints one "name: v1, v2, ..." line per name, in the given order.
// Names missing from ds are skipped.
func Write(w io.Writer, ds *pareto.Dataset, names []string) error {
	bw := bufio.NewWriter(w)
	for _, name := range names {
		scores, ok := ds.Get(name)
		if !ok {
			continue
		}
		vals := make([]string, len(scores))
		for i, v := range scores {
			vals[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\n", name, strings.Join(vals, ", ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
