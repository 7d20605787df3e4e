package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"taskbot/internal/store"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "2006-01-02"

// Exporter renders one user's task list as json, csv or pdf.
type Exporter struct{ st store.Store }

func NewExporter(st store.Store) *Exporter { return &Exporter{st: st} }

func (e *Exporter) Export(ctx context.Context, userID int64, format string) ([]byte, error) {
	tasks, err := e.st.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "description", "start_date", "end_date"})
		for _, t := range tasks {
			_ = w.Write([]string{
				fmt.Sprint(t.ID), t.Description,
				t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout),
			})
		}
		w.Flush()
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "To-Do List")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for i, t := range tasks {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, t), "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
