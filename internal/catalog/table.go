package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row maps a declared column name to its raw value.
type Row map[string]string

// Table is a parsed tabular source: the declared header order plus rows.
type Table struct {
	Header []string
	Rows   []Row
}

// ReadCSV parses CSV with a header row. Header cells are trimmed and a
// leading UTF-8 byte order mark is dropped. Rows may be shorter than the
// header; missing cells read as empty. Quoting follows RFC 4180: a syntax
// error is a *MalformedRecordError without a source name.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, syntaxError(0, err, "reading header")
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	table := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(len(table.Rows)+1, err, "reading row "+strconv.Itoa(len(table.Rows)+1))
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func syntaxError(row int, err error, doing string) error {
	var parse *csv.ParseError
	if errors.As(err, &parse) {
		return &MalformedRecordError{Row: row, Cause: parse}
	}
	return fmt.Errorf("%s: %w", doing, err)
}
