package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a report to PDF. Image fetches are best-effort: an
// unreachable or undecodable image renders as an empty bordered placeholder
// and the rest of the document still completes.
type PDFRenderer struct {
	Client *http.Client
}

// NewPDFRenderer returns a renderer with a bounded-timeout HTTP client for
// image fetches.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Client: &http.Client{Timeout: 10 * time.Second}}
}

const (
	pdfMargin    = 14.0
	thumbWidth   = 42.0
	thumbHeight  = 30.0
	thumbGap     = 3.0
	rowHeight    = 6.0
	labelWidth   = 50.0
	pageBreakAt  = 262.0
	swatchWidth  = 16.0
	swatchHeight = 5.0
)

// Render writes the report as an A4 PDF document.
func (p *PDFRenderer) Render(r *Report, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	generated := r.GeneratedAt.Format("1/2/2006, 3:04:05 PM")
	imageSeq := 0
	for _, page := range r.Pages {
		pdf.AddPage()
		p.renderHeader(pdf, r.Title, generated)
		for _, block := range page.Blocks {
			imageSeq = p.renderBlock(pdf, block, imageSeq)
		}
	}

	return pdf.Output(w)
}

func (p *PDFRenderer) renderHeader(pdf *gofpdf.Fpdf, title, generated string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, "Generated on "+generated, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(229, 231, 235)
	y := pdf.GetY() + 2
	pdf.Line(pdfMargin, y, 210-pdfMargin, y)
	pdf.SetY(y + 4)
}

func (p *PDFRenderer) renderBlock(pdf *gofpdf.Fpdf, block Block, imageSeq int) int {
	if block.Placeholder != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, 10, block.Placeholder, "1", 1, "C", false, 0, "")
		return imageSeq
	}

	if pdf.GetY() > pageBreakAt-float64(len(block.Rows))*rowHeight {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", block.Index, block.Title), "", 1, "L", false, 0, "")

	for _, row := range block.Rows {
		p.renderRow(pdf, row.Label, row.Value)
	}

	// Colour swatch. Non-hex passthrough values get an outline only.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(labelWidth, rowHeight, "Colour:", "", 0, "L", false, 0, "")
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetDrawColor(156, 163, 175)
	if rr, g, b, ok := hexToRGB(block.SwatchHex); ok {
		pdf.SetFillColor(rr, g, b)
		pdf.Rect(x, y+0.5, swatchWidth, swatchHeight, "FD")
	} else {
		pdf.Rect(x, y+0.5, swatchWidth, swatchHeight, "D")
	}
	pdf.Ln(rowHeight)

	// Status badge.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(labelWidth, rowHeight, "Status:", "", 0, "L", false, 0, "")
	if rr, g, b, ok := hexToRGB(block.Status.ColorHex); ok {
		pdf.SetFillColor(rr, g, b)
	} else {
		pdf.SetFillColor(107, 114, 128)
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(28, rowHeight-1, block.Status.Label, "", 1, "C", true, 0, "")

	if len(block.ImageURLs) > 0 {
		imageSeq = p.renderImages(pdf, block.ImageURLs, imageSeq)
	}
	pdf.Ln(5)
	return imageSeq
}

func (p *PDFRenderer) renderRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(labelWidth, rowHeight, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, rowHeight, value, "", 1, "L", false, 0, "")
}

func (p *PDFRenderer) renderImages(pdf *gofpdf.Fpdf, urls []string, imageSeq int) int {
	pdf.Ln(2)
	x := pdfMargin
	for _, u := range urls {
		if x+thumbWidth > 210-pdfMargin {
			x = pdfMargin
			pdf.Ln(thumbHeight + thumbGap)
		}
		if pdf.GetY()+thumbHeight > pageBreakAt {
			pdf.AddPage()
			x = pdfMargin
		}
		y := pdf.GetY()
		if name, imgType, ok := p.fetchImage(pdf, u, imageSeq); ok {
			pdf.ImageOptions(name, x, y, thumbWidth, thumbHeight, false,
				gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}, 0, "")
		} else {
			pdf.SetDrawColor(229, 231, 235)
			pdf.Rect(x, y, thumbWidth, thumbHeight, "D")
		}
		imageSeq++
		x += thumbWidth + thumbGap
	}
	pdf.Ln(thumbHeight + thumbGap)
	return imageSeq
}

// fetchImage downloads and registers one image. Any failure (network, bad
// status, undecodable bytes) reports !ok so the caller draws a placeholder;
// the decode check keeps a corrupt payload from poisoning the document.
func (p *PDFRenderer) fetchImage(pdf *gofpdf.Fpdf, url string, seq int) (string, string, bool) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return "", "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", false
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", "", false
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", false
	}
	var imgType string
	switch format {
	case "jpeg":
		imgType = "JPG"
	case "png":
		imgType = "PNG"
	case "gif":
		imgType = "GIF"
	default:
		return "", "", false
	}

	name := fmt.Sprintf("img-%d", seq)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(data))
	if pdf.Err() {
		// gofpdf errors are sticky; stop registering once one occurs.
		return "", "", false
	}
	return name, imgType, true
}

// hexToRGB parses an #RRGGBB string. Reports !ok for anything else, including
// the best-effort passthrough of unknown colour formats.
func hexToRGB(hex string) (int, int, int, bool) {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
