// Package sheetgen builds a printable PDF collector sheet: every Wraith's
// card art, grouped by element, with a summary header.
package sheetgen

import (
	"bytes"
	"fmt"
	"strings"

	"wraithbound/internal/cardart"
	"wraithbound/internal/catalog"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 36
	perRow    = 4
	gutter    = 12.0
	titleSize = 18
	headSize  = 11
	fontSize  = 8

	// cardPx is the rendered PNG width; twice the printed width keeps it sharp.
	cardPx = 236
)

var (
	cardW = (pageW - 2*margin - gutter*(perRow-1)) / perRow
	cardH = cardW * cardart.Height / cardart.Width
)

// Generate returns PDF bytes for the whole catalog. A nil catalog yields
// nil bytes and no error.
func Generate(c *catalog.Catalog, title string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	if title == "" {
		title = "Wraith Vault"
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, false)
	newPage(pdf)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetTextColor(20, 20, 30)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 20, strings.ToUpper(title), "", 1, "L", false, 0, "")

	groups := c.GroupByElement()
	pdf.SetFont("Helvetica", "", fontSize+1)
	pdf.SetTextColor(90, 90, 100)
	pdf.SetX(margin)
	summary := fmt.Sprintf("%d Wraiths   %d Legendary   %d Elements",
		c.Len(), c.CountByRarity(catalog.Legendary), len(groups))
	pdf.CellFormat(pageW-2*margin, 12, summary, "", 1, "L", false, 0, "")

	y := pdf.GetY() + 12
	for _, el := range catalog.Elements() {
		ws := groups[el]
		if len(ws) == 0 {
			continue
		}
		// Keep a header together with at least one row of cards.
		if y+headSize+8+cardH+28 > pageH-margin {
			newPage(pdf)
			y = margin
		}
		y = drawSectionHeader(pdf, el, len(ws), y)
		for i, w := range ws {
			col := i % perRow
			if col == 0 && i > 0 {
				y += cardH + 28
				if y+cardH+28 > pageH-margin {
					newPage(pdf)
					y = margin
				}
			}
			x := margin + float64(col)*(cardW+gutter)
			if err := drawCard(pdf, w, x, y); err != nil {
				return nil, err
			}
		}
		y += cardH + 28 + 10
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetFillColor(250, 249, 246)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetDrawColor(40, 40, 55)
	pdf.SetLineWidth(1.5)
	pdf.Rect(margin/2, margin/2, pageW-margin, pageH-margin, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(margin/2+4, margin/2+4, pageW-margin-8, pageH-margin-8, "D")
	pdf.SetLineWidth(1)
}

// drawSectionHeader draws an accent bar with the element name and returns
// the y coordinate where cards start.
func drawSectionHeader(pdf *gofpdf.Fpdf, el catalog.Element, n int, y float64) float64 {
	a := cardart.Accent(el)
	pdf.SetFillColor(int(a.R), int(a.G), int(a.B))
	pdf.Rect(margin, y, 4, headSize+4, "F")
	pdf.SetFont("Helvetica", "B", headSize)
	pdf.SetTextColor(30, 30, 40)
	pdf.SetXY(margin+10, y)
	pdf.CellFormat(pageW-2*margin-10, headSize+4, fmt.Sprintf("%s WRAITHS (%d)", strings.ToUpper(string(el)), n), "", 0, "L", false, 0, "")
	return y + headSize + 12
}

// drawCard places the card PNG and a caption with rarity and stats.
func drawCard(pdf *gofpdf.Fpdf, w catalog.Wraith, x, y float64) error {
	png, err := cardart.PNG(w, cardPx)
	if err != nil {
		return fmt.Errorf("card %s: %w", w.ID, err)
	}
	name := "card-" + w.ID
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, cardW, cardH, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("card %s: %w", w.ID, err)
	}

	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetTextColor(30, 30, 40)
	pdf.SetXY(x, y+cardH+3)
	pdf.CellFormat(cardW, 10, fmt.Sprintf("%s  %s", w.Name, strings.Repeat("*", w.Rarity)), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize-1)
	pdf.SetTextColor(90, 90, 100)
	pdf.SetXY(x, y+cardH+13)
	st := w.Stats
	pdf.CellFormat(cardW, 9, fmt.Sprintf("HP %d  ATK %d  DEF %d  SPD %d", st.HP, st.Attack, st.Defense, st.Speed), "", 0, "L", false, 0, "")
	return nil
}
