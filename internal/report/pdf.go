package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Generate renders a session's chat history as a PDF document: a centered
// title followed by one bold role header and message body per entry, in
// conversation order.
func Generate(history []domain.HistoryEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Chat History Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, entry := range history {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, capitalize(entry.Type)+":", "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 10, tr(entry.Content), "", "L", false)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
