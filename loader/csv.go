package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kendall-kelly/ecom-reports/models"
)

const utf8BOM = "\uFEFF"

// csvFile is a fully read CSV whose header matched the table definition
type csvFile struct {
	table string
	name  string
	index map[string]int
	rows  [][]string
	lines []int
}

// readCSV reads path and checks that its header holds exactly the expected
// columns, in any order. Rows with a wrong field count are rejected.
func readCSV(path, table string, columns []string) (*csvFile, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.SchemaError{Table: table, File: name, Message: "file is empty, expected a header row"}
	}
	if err != nil {
		return nil, &models.SchemaError{Table: table, File: name, Line: 1, Message: err.Error()}
	}
	header = stripHeaderBOM(header)

	index, err := matchHeader(table, name, header, columns)
	if err != nil {
		return nil, err
	}

	out := &csvFile{table: table, name: name, index: index}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return nil, &models.SchemaError{Table: table, File: name, Line: line, Message: err.Error()}
		}
		line, _ := r.FieldPos(0)
		out.rows = append(out.rows, rec)
		out.lines = append(out.lines, line)
	}
	return out, nil
}

// stripHeaderBOM removes a UTF-8 BOM from the first header cell if present
func stripHeaderBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header
}

func matchHeader(table, name string, header, columns []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	var unknown []string
	for i, col := range header {
		col = strings.TrimSpace(col)
		if _, dup := index[col]; dup {
			return nil, &models.SchemaError{Table: table, File: name, Line: 1, Column: col, Message: "duplicate column"}
		}
		index[col] = i
	}

	expected := make(map[string]bool, len(columns))
	var missing []string
	for _, col := range columns {
		expected[col] = true
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	for col := range index {
		if !expected[col] {
			unknown = append(unknown, col)
		}
	}
	sort.Strings(unknown)

	if len(missing) > 0 || len(unknown) > 0 {
		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "missing columns ["+strings.Join(missing, ", ")+"]")
		}
		if len(unknown) > 0 {
			parts = append(parts, "unknown columns ["+strings.Join(unknown, ", ")+"]")
		}
		return nil, &models.SchemaError{Table: table, File: name, Line: 1, Message: strings.Join(parts, "; ")}
	}
	return index, nil
}

// rowParser converts the cells of one row, keeping the first failure
type rowParser struct {
	file *csvFile
	row  []string
	line int
	err  error
}

func (f *csvFile) parser(i int) *rowParser {
	return &rowParser{file: f, row: f.rows[i], line: f.lines[i]}
}

func (p *rowParser) fail(column, format string, args ...interface{}) {
	if p.err == nil {
		p.err = &models.SchemaError{
			Table:   p.file.table,
			File:    p.file.name,
			Line:    p.line,
			Column:  column,
			Message: fmt.Sprintf(format, args...),
		}
	}
}

func (p *rowParser) raw(column string) string {
	return strings.TrimSpace(p.row[p.file.index[column]])
}

func (p *rowParser) text(column string) string {
	v := p.raw(column)
	if v == "" {
		p.fail(column, "value is required")
	}
	return v
}

func (p *rowParser) id(column string) uint {
	v := p.raw(column)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		p.fail(column, "invalid identifier %q", v)
		return 0
	}
	return uint(n)
}

func (p *rowParser) count(column string) int {
	v := p.raw(column)
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(column, "invalid integer %q", v)
		return 0
	}
	if n < 0 {
		p.fail(column, "must not be negative, got %d", n)
	}
	return n
}

func (p *rowParser) amount(column string) float64 {
	v := p.raw(column)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(column, "invalid number %q", v)
		return 0
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		p.fail(column, "must be a finite number, got %q", v)
		return 0
	}
	if n < 0 {
		p.fail(column, "must not be negative, got %g", n)
	}
	return n
}

func (p *rowParser) date(column string) models.Date {
	v := p.raw(column)
	d, err := models.ParseDate(v)
	if err != nil {
		p.fail(column, "%v", err)
	}
	return d
}
