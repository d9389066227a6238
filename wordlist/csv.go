package wordlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var csvHeader = []string{"Word", "Definition"}

// ExportCSV writes entries with a "Word,Definition" header.
func ExportCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Word, e.Definition}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads a list written by ExportCSV or a spreadsheet. The first
// row is always treated as a header. Extra columns are joined back into the
// definition and rows missing a word or definition are skipped.
func ImportCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []Entry
	for line := 0; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 0 || len(record) < 2 {
			continue
		}

		e := Entry{
			Word:       strings.TrimSpace(record[0]),
			Definition: strings.TrimSpace(strings.Join(record[1:], ",")),
		}
		if e.Word == "" || e.Definition == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
