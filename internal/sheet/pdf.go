package sheet

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Generate writes a workout sheet PDF. The title ("<date> - <name>")
// renders on the first page only; exercise lines and their ruled boxes
// follow the shared layout so filled-in sheets can be cropped back
// apart by the scanner.
func Generate(w io.Writer, title string, lines []string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, page := range Paginate(lines) {
		pdf.AddPage()
		if i == 0 {
			pdf.SetFont("Helvetica", "B", TitleSize)
			pdf.Text(Margin, TopMargin, title)
		}
		pdf.SetFont("Helvetica", "", LineSize)
		for _, box := range page.Boxes {
			pdf.Text(Margin, box.LineY, box.Name)
			pdf.Rect(box.Left(), box.Top, box.Right()-box.Left(), BoxHeight, "D")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
