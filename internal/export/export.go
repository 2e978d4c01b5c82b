// Package export serializes the expense collection with resolved category
// names.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"ledger/internal/core"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var csvHeader = []string{"Date", "Description", "Category", "Amount", "Notes"}

// Record is an expense as exported in JSON.
type Record struct {
	core.Expense
	CategoryName string `json:"categoryName"`
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// Write dispatches on f.
func Write(w io.Writer, f Format, snap core.Snapshot) error {
	if f == FormatJSON {
		return WriteJSON(w, snap)
	}
	return WriteCSV(w, snap)
}

// WriteCSV writes one row per expense in storage order.
func WriteCSV(w io.Writer, snap core.Snapshot) error {
	ix := snap.Index()
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, x := range snap.Expenses {
		row := []string{
			x.Date.String(),
			x.Description,
			ix.Resolve(x.CategoryID).Name,
			x.Amount.StringFixed(2),
			x.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %s: %w", x.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an indented array of Records.
func WriteJSON(w io.Writer, snap core.Snapshot) error {
	ix := snap.Index()
	records := make([]Record, 0, len(snap.Expenses))
	for _, x := range snap.Expenses {
		records = append(records, Record{Expense: x, CategoryName: ix.Resolve(x.CategoryID).Name})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}
