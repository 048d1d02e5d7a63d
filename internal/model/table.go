package model

// Unresolved marks a column role that no header matched.
const Unresolved = -1

// RawTable is one uploaded file as parsed by the loader: a header row and
// string cells. Every row has exactly len(Headers) cells.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the value at row i, column col. An unresolved column yields "".
func (t *RawTable) Cell(i, col int) string {
	if col < 0 || col >= len(t.Headers) {
		return ""
	}
	row := t.Rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// Column returns the index of the header named name, or Unresolved.
func (t *RawTable) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return Unresolved
}

// ColumnRoles maps the four logical roles of a ledger file to column indexes
// in a RawTable. Any role may be Unresolved.
type ColumnRoles struct {
	AccountNumber int
	AccountLabel  int
	Debit         int
	Credit        int
}

// HasAccountNumber reports whether the mandatory account number column was found.
func (r ColumnRoles) HasAccountNumber() bool {
	return r.AccountNumber != Unresolved
}
