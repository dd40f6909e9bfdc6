// Package importer reconciles externally supplied spreadsheet rows into the
// store. Publishers match on the parsed "Apellidos, Nombre" cell, reports on
// the (publisher, month) natural key; every write is an upsert so re-running
// the same file is safe.
package importer

// Row is one spreadsheet line keyed by header cell.
type Row map[string]string

// RowError records a row that could not be reconciled. Row is the 1-based
// data row number (the header row is not counted).
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Summary is the outcome of one reconciliation run. A run with row errors
// is still a successful run; callers inspect the counters.
type Summary struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Progress receives incremental percentage updates. It is an observability
// hook only; a nil callback changes nothing about the run.
type Progress func(percent int, message string)

func (p Progress) report(percent int, message string) {
	if p != nil {
		p(percent, message)
	}
}
