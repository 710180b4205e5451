package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"cobuilt/quote-bot/internal/domain/quote"
)

const (
	brandBlueR, brandBlueG, brandBlueB       = 26, 58, 107
	brandOrangeR, brandOrangeG, brandOrangeB = 210, 105, 30
)

type Generator struct {
	// assetsDir holds optional branding files (logo.png, signature.png).
	// Missing assets are skipped, never fatal.
	assetsDir string
}

func New(assetsDir string) *Generator { return &Generator{assetsDir: assetsDir} }

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Concrete Quote", false)
	pdf.SetMargins(14, 10, 14)
	pdf.AddPage()

	g.header(pdf)

	pdf.SetDrawColor(brandBlueR, brandBlueG, brandBlueB)
	pdf.SetLineWidth(0.6)
	pdf.Line(14, pdf.GetY(), 196, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(brandBlueR, brandBlueG, brandBlueB)
	pdf.CellFormat(0, 9, "CONCRETE QUOTE", "", 1, "C", false, 0, "")
	pdf.SetTextColor(51, 51, 51)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Date: %s", q.CreatedAt.Format("Jan 02, 2006")), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Quote No: %s", q.Number), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	t := q.Totals()
	g.customerBlock(pdf, q, t)
	g.itemsTable(pdf, q, t)
	g.notes(pdf)
	g.signature(pdf)

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 4, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, "A branch of SSara Group", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("quote pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf) {
	if logo := filepath.Join(g.assetsDir, "logo.png"); fileExists(logo) {
		pdf.ImageOptions(logo, 170, 10, 24, 24, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		log.Printf("quote pdf: logo missing, skipping path=%s", logo)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, "CoBuilt Solutions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, line := range []string{
		"Addis Ababa, Ethiopia",
		"Phone: +251911246502 / +251911246820",
		"Email: CoBuilt@CoBuilt.com",
		"Web: www.CoBuilt.com",
	} {
		pdf.CellFormat(0, 3.5, line, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(51, 51, 51)
	pdf.Ln(3)
}

func (g *Generator) customerBlock(pdf *gofpdf.Fpdf, q quote.Quote, t quote.Totals) {
	grades := ""
	for i, gr := range q.Grades {
		if i > 0 {
			grades += ", "
		}
		grades += gr
	}
	rows := [][4]string{
		{"Company:", q.Customer, "Additional service:", q.Extras},
		{"Location:", q.Location, "Payment terms:", "100% advance"},
		{"Quantity:", quote.Money(t.TotalQuantity) + "m3", "Validity of quote:", "Valid for 3 days"},
		{"Concrete Grade:", grades, "", ""},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(33, 5, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(60, 5, row[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(40, 5, row[2], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, row[3], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) itemsTable(pdf *gofpdf.Fpdf, q quote.Quote, t quote.Totals) {
	widths := []float64{10, 56, 18, 26, 30, 34}
	headers := []string{"No.", "Description", "Grade", "Quantity", "Price", "Total Price"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(brandOrangeR, brandOrangeG, brandOrangeB)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(245, 245, 220)
	for i, line := range t.Lines {
		fill := i%2 == 0
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 6, "Concrete OPC", "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[2], 6, line.Grade, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[3], 6, quote.Money(line.Quantity)+"m3", "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[4], 6, quote.Money(line.UnitPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[5], 6, quote.Money(line.Total), "1", 1, "R", fill, 0, "")
	}

	labelW := widths[0] + widths[1] + widths[2] + widths[3] + widths[4]
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 6, quote.Money(t.Subtotal), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(labelW, 6, "VAT (15%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 6, quote.Money(t.VAT), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 7, "Grand Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 7, quote.Money(t.GrandTotal), "T", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func (g *Generator) notes(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 4, "Note: VAT (15%) has been included in the Grand Total above.", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, "- As the order volume increases, we can extend a discount accordingly.", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(0, 5, "Terms & Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, line := range []string{
		"- Delivery Schedule: Within 7-10 working days from confirmation.",
		"- Payment Terms: 100% advance.",
		"- Validity: This quote is valid for 3 days from the date of issue.",
		"- Exclusions: Does not include site preparation, road access issues, or waiting time beyond 1 hour per truck.",
	} {
		pdf.CellFormat(0, 4, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(0, 5, "For any clarifications, please contact:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, line := range []string{
		"Biruk Endale",
		"Chief Operation Officer",
		"CoBuilt Solutions",
		"+251911246502 / +251911246520",
	} {
		pdf.CellFormat(0, 4, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func (g *Generator) signature(pdf *gofpdf.Fpdf) {
	sig := filepath.Join(g.assetsDir, "signature.png")
	if !fileExists(sig) {
		log.Printf("quote pdf: signature missing, skipping path=%s", sig)
		return
	}
	y := pdf.GetY()
	pdf.ImageOptions(sig, 130, y, 60, 0, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetY(y + 36)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(0, 5, "Approved By:", "", 1, "R", false, 0, "")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
