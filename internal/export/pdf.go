package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pension-board/retiree-intake/internal/filecodec"
	"github.com/pension-board/retiree-intake/internal/form"
)

const (
	pdfTitle = "RETIREE FORM SUBMISSIONS REPORT"

	signatureWidth = 40.0 // mm
)

// PDF renders all records into a sectioned A4 document, one page per
// submission. Attached files are listed with a download URL constructed
// from baseURL; image slots are embedded inline when their stored content
// decodes as PNG or JPEG, with a text notice otherwise. Zero records yield
// a report header and a "No submissions" line.
func PDF(records []Record, baseURL string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, pdfTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Generated on: "+time.Now().Format("January 2, 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(records) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 10, "No submissions", "", 1, "C", false, 0, "")
	}

	for i, rec := range records {
		writeRecord(pdf, rec, baseURL)

		if i < len(records)-1 {
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeRecord(pdf *fpdf.Fpdf, rec Record, baseURL string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, fmt.Sprintf("SUBMISSION #%d", rec.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Submitted: "+rec.CreatedAt.Format("January 2, 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	for _, section := range form.Sections {
		writeSection(pdf, section, rec)
	}

	writeDocuments(pdf, rec, baseURL)
}

func writeSection(pdf *fpdf.Fpdf, section string, rec Record) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, section, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, field := range form.SectionFields(section) {
		line := field.Label + ": " + formatValue(field.Name, rec.Data[field.Name])
		pdf.MultiCell(0, 5.5, line, "", "L", false)
	}

	pdf.Ln(3)
}

func writeDocuments(pdf *fpdf.Fpdf, rec Record, baseURL string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, form.SectionDocuments, "", 1, "L", false, 0, "")

	byField := rec.FilesByField()

	for _, slot := range form.FileSlots {
		files := byField[slot.Name]
		if len(files) == 0 {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 6, slot.Label+": "+notProvided, "", 1, "L", false, 0, "")
			continue
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, slot.Label+":", "", 1, "L", false, 0, "")

		for _, file := range files {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 5.5, "  - "+file.Original, "", 1, "L", false, 0, "")

			url := fmt.Sprintf("%s/api/files/%d", baseURL, file.ID)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(21, 101, 192)
			pdf.CellFormat(0, 5, "    Download: "+url, "", 1, "L", false, 0, url)
			pdf.SetTextColor(0, 0, 0)

			if slot.Image {
				embedImage(pdf, file)
			}
		}

		pdf.Ln(2)
	}
}

// embedImage places the decoded image under its file entry. Content that
// does not decode, or is not PNG/JPEG, yields a text notice instead.
func embedImage(pdf *fpdf.Fpdf, file FileRef) {
	raw, err := filecodec.Decode(file.Content)
	if err != nil {
		imageFallback(pdf)
		return
	}

	imageType := sniffImageType(raw)
	if imageType == "" {
		imageFallback(pdf)
		return
	}

	name := fmt.Sprintf("file-%d", file.ID)
	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}

	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if pdf.Err() {
		// bad image data, reset and fall back to the notice
		pdf.ClearError()
		imageFallback(pdf)

		return
	}

	pdf.ImageOptions(name, pdf.GetX()+6, pdf.GetY()+1, signatureWidth, 0, false, opts, 0, "")
	pdf.Ln(signatureWidth/2 + 4)
}

func imageFallback(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "    (image could not be rendered)", "", 1, "L", false, 0, "")
}

// sniffImageType recognizes the two embeddable formats by magic bytes.
func sniffImageType(b []byte) string {
	switch {
	case len(b) > 8 && bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return "PNG"
	case len(b) > 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return "JPG"
	default:
		return ""
	}
}
