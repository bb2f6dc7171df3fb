// Package intake reads news items from CSV files and syndication feeds and
// checks them in bulk.
package intake

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fakecheck/internal/model"
)

var csvColumns = []string{"title", "content", "url"}

// ParseCSVFile reads check requests from a CSV file. See ParseCSV.
func ParseCSVFile(path string) ([]model.CheckRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "intake: open csv")
	}
	defer f.Close() //nolint:errcheck

	return ParseCSV(f)
}

// ParseCSV reads check requests from CSV with a header row. Recognized
// columns are title, content and url (case-insensitive, any order); at least
// one must be present. Rows with every recognized column blank are skipped.
func ParseCSV(r io.Reader) ([]model.CheckRequest, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "intake: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("intake: csv is empty")
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	found := false
	for _, col := range csvColumns {
		if _, ok := colIdx[col]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, eris.Errorf("intake: csv header needs one of %s", strings.Join(csvColumns, ", "))
	}

	var items []model.CheckRequest
	for _, row := range records[1:] {
		req := model.CheckRequest{
			Title:   getCol(row, colIdx, "title"),
			Content: getCol(row, colIdx, "content"),
			URL:     getCol(row, colIdx, "url"),
		}
		if req.Title == "" && req.Content == "" && req.URL == "" {
			continue
		}
		items = append(items, req)
	}
	return items, nil
}

func getCol(row []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
