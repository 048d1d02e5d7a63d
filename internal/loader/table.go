package loader

import (
	"fmt"

	"github.com/soldes-dev/soldes/internal/model"
)

// newTable builds a RawTable from records whose first row is the header.
// Headers are made unique and every row is padded or cut to the header width.
func newTable(records [][]string) *model.RawTable {
	if len(records) == 0 {
		return &model.RawTable{}
	}
	headers := uniqueHeaders(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(headers))
		copy(row, rec)
		rows = append(rows, row)
	}
	return &model.RawTable{Headers: headers, Rows: rows}
}

// uniqueHeaders names blank headers "Unnamed: i" and suffixes repeated ones
// with ".1", ".2", ...
func uniqueHeaders(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	counts := make(map[string]int)
	for i, h := range raw {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
