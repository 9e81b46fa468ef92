package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"ojtms/services"
)

// PDFRenderer renders certificates with an embedded verification QR
// code. It satisfies services.Renderer.
type PDFRenderer struct{}

var _ services.Renderer = PDFRenderer{}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{}
}

// RenderQR encodes the verification URL as a PNG.
func (PDFRenderer) RenderQR(verifyURL string) ([]byte, error) {
	return qrcode.Encode(verifyURL, qrcode.Medium, 256)
}

// RenderPDF lays out the certificate document from the frozen snapshot
// fields and returns the PDF bytes.
func (PDFRenderer) RenderPDF(data services.RenderData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("OJT Completion Certificate", false)
	pdf.AddPage()

	// Border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(0, 0, 77)
	pdf.Rect(8, 8, 281, 194, "D")

	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(0, 0, 77)
	pdf.SetY(30)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	pdf.CellFormat(0, 14, data.ParticipantName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the On-the-Job Training program", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, data.BatchName, "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Grade: %s    Final Score: %.1f    Attendance: %.1f%%",
		data.Grade, data.FinalScore, data.AttendanceRate), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.Ln(4)
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate No: %s", data.CertificateNo), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued on %s", data.IssueDate.Format("January 2, 2006")), "", 1, "C", false, 0, "")

	if len(data.QRImage) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(data.QRImage))
		pdf.ImageOptions("qr", 245, 155, 35, 35, false, opts, 0, "")
		pdf.SetXY(230, 192)
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(65, 4, "Scan to verify authenticity", "", 0, "C", false, 0, "")
	}

	pdf.SetXY(15, 192)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(100, 4, fmt.Sprintf("Serial: %s", data.Serial), "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
