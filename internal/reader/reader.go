// Package reader turns a delimited staging file into rows of string cells
// aligned with a table's column order. Alignment is enforced here: a row
// whose cell count differs from the schema is a structural failure that
// aborts the whole file, so the validator downstream can assume every row
// lines up with the column list.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/GooferByte/OfsaaValidator/internal/schema"
)

// Metadata describes what was read, for reporting.
type Metadata struct {
	Path     string
	Table    string
	Encoding string // encoding actually used to decode the file
	Records  int
	Columns  int
}

// Result is a fully parsed staging file.
type Result struct {
	Rows     [][]string
	Metadata Metadata
}

// MisalignedRowError reports a row whose cell count does not match the
// schema. It aborts processing: nothing is partially validated.
type MisalignedRowError struct {
	Line     int // 1-based physical line number
	Expected int
	Found    int
}

func (e *MisalignedRowError) Error() string {
	return fmt.Sprintf("line %d: column count mismatch: expected %d columns, found %d", e.Line, e.Expected, e.Found)
}

// Read parses the file at path against the table's delimiter, encoding, and
// column count.
func Read(path string, tbl *schema.Table) (*Result, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided input path
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	res, err := Parse(f, tbl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res.Metadata.Path = path
	return res, nil
}

// Parse reads delimited rows from r. Blank lines are skipped; every other
// line must split into exactly one cell per schema column.
func Parse(r io.Reader, tbl *schema.Table) (*Result, error) {
	enc, encName, err := encodingFor(tbl.Encoding)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	delimiter := tbl.Delimiter
	if delimiter == "" {
		delimiter = schema.DefaultDelimiter
	}
	want := len(tbl.Columns)

	var rows [][]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		cells := strings.Split(text, delimiter)
		if len(cells) != want {
			return nil, &MisalignedRowError{Line: line, Expected: want, Found: len(cells)}
		}
		rows = append(rows, cells)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return &Result{
		Rows: rows,
		Metadata: Metadata{
			Table:    tbl.Name,
			Encoding: encName,
			Records:  len(rows),
			Columns:  want,
		},
	}, nil
}

// encodingFor maps a declared encoding name onto a decoder. UTF-8 needs no
// decoding. Unknown encodings are a structural failure rather than a silent
// mis-decode.
func encodingFor(name string) (encoding.Encoding, string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	switch normalized {
	case "", "UTF-8", "UTF8", "US-ASCII", "ASCII":
		return nil, schema.DefaultEncoding, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, "ISO-8859-1", nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, "WINDOWS-1252", nil
	default:
		return nil, "", fmt.Errorf("unsupported encoding %q", name)
	}
}
