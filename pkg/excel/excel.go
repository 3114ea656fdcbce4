package excel

import (
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheets   = errors.New("workbook contains no sheets")
	ErrNoDataRows = errors.New("workbook contains no data rows")
)

// Row is one data row of a sheet, keyed by header. Lookups resolve headers
// case-insensitively against a map built once at parse time.
type Row struct {
	number int
	lower  map[string]string
}

// Number returns the 1-based row number as it appears in the file, counting
// the header row.
func (r Row) Number() int {
	return r.number
}

// Get returns the cell under the given header, matched case-insensitively.
// When two headers collide under case folding, the leftmost column wins. The
// second return is false when no such header exists in the sheet.
func (r Row) Get(name string) (string, bool) {
	v, ok := r.lower[strings.ToLower(name)]
	return v, ok
}

// GetAny tries the given header names in order and returns the first match.
func (r Row) GetAny(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := r.Get(name); ok {
			return v, true
		}
	}
	return "", false
}

// Sheet is the first worksheet of an uploaded workbook: a header row followed
// by data rows.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// HasHeader reports whether the sheet's header row contains the given name,
// case-insensitively.
func (s *Sheet) HasHeader(name string) bool {
	for _, h := range s.Headers {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

// ReadWorkbook parses the first sheet of an xlsx workbook. Cells are read
// raw, so numeric and date cells arrive as their underlying serial values
// rather than display strings.
func ReadWorkbook(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sheet")
	}
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	headers := rows[0]
	out := &Sheet{Headers: headers}
	for i, cells := range rows[1:] {
		row := Row{
			// Header is row 1; first data row is row 2.
			number: i + 2,
			lower:  make(map[string]string, len(headers)),
		}
		empty := true
		for j, header := range headers {
			if header == "" {
				continue
			}
			var cell string
			if j < len(cells) {
				cell = cells[j]
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			// When headers collide under case folding, the leftmost column wins.
			lowered := strings.ToLower(header)
			if _, taken := row.lower[lowered]; !taken {
				row.lower[lowered] = cell
			}
		}
		if empty {
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	if len(out.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	return out, nil
}

// truthy cell markers accepted by Bool.
var truthyValues = map[string]struct{}{
	"1":    {},
	"yes":  {},
	"true": {},
	"y":    {},
}

// Bool interprets a cell as a boolean flag. Anything outside the accepted
// truthy markers, including an empty cell, is false.
func Bool(raw string) bool {
	_, ok := truthyValues[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
