package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/remarkableland/bonusgen/schedule"
)

const (
	pageMargin   = 8.0
	bottomLimit  = 203.0 // landscape Letter is 215.9mm tall
	lineHeight   = 5.0
	headerHeight = 8.0

	// Parcel IDs beyond this length are split at their midpoint so the
	// APN column does not overflow. Display only.
	parcelWrapLen = 22
)

// pdfText maps UTF-8 text onto the Latin-1 range the core PDF fonts
// expect. The registered-trademark sign is the only non-ASCII rune we emit.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "®", "\xae")
}

// One width per DisplayLabels column, landscape Letter, in mm.
var pdfColWidths = [10]float64{20, 12, 23, 27, 50, 29, 24, 29, 24, 25}

// PDF writes the paginated document encoding: a landscape table whose
// header repeats on every page, emphasized totals rows, the fixed notes
// block, and a two-up signature grid for the team list.
func PDF(w io.Writer, s *schedule.Schedule) error {
	if err := validate(s); err != nil {
		return err
	}

	symbol := s.Meta.CurrencySymbol
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(31, 71, 136)
	pdf.CellFormat(0, 9, pdfText(Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, "Month Ending: "+s.Meta.PeriodEnd.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	drawTableHeader(pdf)

	for i, row := range s.Rows {
		cells := rowCells(row, symbol)
		cells[4] = wrapParcel(cells[4])
		lines := 1 + strings.Count(cells[4], "\n")
		rowHeight := lineHeight * float64(lines)

		if pdf.GetY()+rowHeight > bottomLimit {
			pdf.AddPage()
			drawTableHeader(pdf)
		}

		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Helvetica", "", 8)
		drawDataRow(pdf, cells, rowHeight, fill)
	}

	// Spacer row, then the three totals rows with a rule above the first
	// and below the last.
	ensureSpace(pdf, lineHeight*5)
	pdf.CellFormat(tableWidth(), lineHeight, "", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	leadWidth := tableWidth() - pdfColWidths[8] - pdfColWidths[9]
	for i, pair := range totalsCells(s.Totals, symbol) {
		border := ""
		switch i {
		case 0:
			border = "T"
		case 2:
			border = "B"
		}
		pdf.CellFormat(leadWidth, 6, "", border, 0, "R", false, 0, "")
		pdf.CellFormat(pdfColWidths[8], 6, pair[0]+":", border, 0, "R", false, 0, "")
		pdf.CellFormat(pdfColWidths[9], 6, pair[1], border, 1, "R", false, 0, "")
	}

	drawNotes(pdf)
	drawSignatures(pdf, s.Meta.TeamNames)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func tableWidth() float64 {
	total := 0.0
	for _, w := range pdfColWidths {
		total += w
	}
	return total
}

func drawTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(31, 71, 136)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range DisplayLabels {
		last := 0
		if i == len(DisplayLabels)-1 {
			last = 1
		}
		pdf.CellFormat(pdfColWidths[i], headerHeight, label, "1", last, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawDataRow renders one table row. The APN cell may hold two lines; the
// other cells stretch to the full row height so borders stay aligned.
func drawDataRow(pdf *fpdf.Fpdf, cells []string, rowHeight float64, fill bool) {
	y := pdf.GetY()
	x := pdf.GetX()
	for i, cell := range cells {
		align := "L"
		if i >= 5 {
			align = "R"
		}
		if i == 4 && strings.Contains(cell, "\n") {
			pdf.SetXY(x, y)
			pdf.MultiCell(pdfColWidths[i], rowHeight/2, cell, "1", align, fill)
		} else {
			pdf.SetXY(x, y)
			pdf.CellFormat(pdfColWidths[i], rowHeight, cell, "1", 0, align, fill, 0, "")
		}
		x += pdfColWidths[i]
	}
	pdf.SetXY(pageMargin, y+rowHeight)
}

func ensureSpace(pdf *fpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > bottomLimit {
		pdf.AddPage()
	}
}

func drawNotes(pdf *fpdf.Fpdf) {
	ensureSpace(pdf, 30)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Notes:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, NoteFundingDate, "", "L", false)
	pdf.Ln(1)
	pdf.MultiCell(0, 4, NoteReconciliation, "", "L", false)
}

// signatureRows lays the team list out two (name, line) pairs per row, in
// input order. An odd trailing member leaves the second pair blank.
func signatureRows(names []string) [][4]string {
	sigLine := strings.Repeat("_", 35)
	rows := make([][4]string, 0, (len(names)+1)/2)
	for i := 0; i < len(names); i += 2 {
		row := [4]string{names[i], sigLine, "", ""}
		if i+1 < len(names) {
			row[2] = names[i+1]
			row[3] = sigLine
		}
		rows = append(rows, row)
	}
	return rows
}

func drawSignatures(pdf *fpdf.Fpdf, names []string) {
	if len(names) == 0 {
		return
	}

	ensureSpace(pdf, float64((len(names)+1)/2)*12+12)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Signatures:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	for _, row := range signatureRows(names) {
		pdf.CellFormat(45, 12, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(65, 12, row[1], "", 0, "L", false, 0, "")
		pdf.CellFormat(10, 12, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 12, row[2], "", 0, "L", false, 0, "")
		pdf.CellFormat(65, 12, row[3], "", 1, "L", false, 0, "")
	}
}

func wrapParcel(id string) string {
	if len(id) <= parcelWrapLen {
		return id
	}
	mid := len(id) / 2
	return id[:mid] + "\n" + id[mid:]
}
