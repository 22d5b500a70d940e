// Package voucher формирует PDF-ваучер подтвержденного бронирования.
package voucher

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const company = "Trekkers Encounter"

// Render рисует одностраничный ваучер. QR-код ведет на qrURL.
func Render(b model.BookingDetail, qrURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, strings.ToUpper(company)+" TOUR VOUCHER")
	pdf.Ln(18)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "BOOKING SUMMARY")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID: %d", b.ID),
		fmt.Sprintf("Status: %s", b.Status),
		fmt.Sprintf("Travel date: %s", b.BookedDate),
		fmt.Sprintf("Travellers: %d", b.NoOfPeople),
		fmt.Sprintf("Total: %.2f %s", b.Package.Price*float64(b.NoOfPeople), b.Package.Currency),
	}
	for _, line := range lines {
		pdf.SetX(20)
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(6)
	}

	png, err := qrcode.Encode(qrURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать QR-код: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, opts, 0, "")

	pdf.SetY(yStart + 63)
	section(pdf, "TOUR")
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s (%s)", b.Package.Title, b.Package.Duration)), "", "", false)
	pdf.Ln(4)

	section(pdf, "LEAD TRAVELLER")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("%s %s", b.User.FirstName, b.User.LastName)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(b.User.Email))
	pdf.Ln(6)
	if b.ContactNo != nil && *b.ContactNo != "" {
		pdf.Cell(0, 7, tr(*b.ContactNo))
		pdf.Ln(6)
	}
	if b.Description != nil && *b.Description != "" {
		pdf.Ln(4)
		section(pdf, "NOTES")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(*b.Description), "", "", false)
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 280, 195, 280)
	pdf.SetY(283)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Present this voucher to your guide on the day of departure.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("не удалось сформировать PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}
