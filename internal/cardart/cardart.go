// Package cardart draws a Wraith as a trading-card PNG: palette gradient,
// rarity stars, stat bars and ability labels.
package cardart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"wraithbound/internal/catalog"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	Width  = 320
	Height = 440

	MinThumb = 64
	MaxThumb = 640

	pad     = 16.0
	radius  = 18.0
	statMax = 150.0 // bar length reference, above every bundled stat
)

// Accent colors per element, matching the web stylesheet.
var accents = map[catalog.Element]color.RGBA{
	catalog.Shadow: {0xc0, 0x84, 0xfc, 0xff},
	catalog.Flame:  {0xfb, 0x92, 0x3c, 0xff},
	catalog.Void:   {0xf4, 0x72, 0xb6, 0xff},
	catalog.Storm:  {0x22, 0xd3, 0xee, 0xff},
	catalog.Venom:  {0x4a, 0xde, 0x80, 0xff},
	catalog.Frost:  {0x60, 0xa5, 0xfa, 0xff},
}

var (
	cardBase  = color.RGBA{0x0d, 0x0d, 0x14, 0xff}
	barTrack  = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	textLight = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	textDim   = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	starGold  = color.RGBA{0xfa, 0xcc, 0x15, 0xff}
	hpGreen   = color.RGBA{0x34, 0xd3, 0x99, 0xff}
)

// Accent returns the element's highlight color. Unknown elements get grey.
func Accent(e catalog.Element) color.RGBA {
	if c, ok := accents[e]; ok {
		return c
	}
	return color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
}

// ParseHex parses "#rrggbb". Anything else yields fallback.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return fallback
	}
	return c
}

// Render draws the full-size card for w.
func Render(w catalog.Wraith) image.Image {
	dc := gg.NewContext(Width, Height)
	accent := Accent(w.Element)
	top := ParseHex(w.Palette[0], accent)
	bottom := ParseHex(w.Palette[1], cardBase)

	// Frame: accent border around a dark body.
	dc.SetColor(accent)
	dc.DrawRoundedRectangle(0, 0, Width, Height, radius)
	dc.Fill()
	dc.SetColor(cardBase)
	dc.DrawRoundedRectangle(3, 3, Width-6, Height-6, radius-2)
	dc.Fill()

	// Portrait window with the palette gradient and an element sigil.
	artH := 190.0
	grad := gg.NewLinearGradient(0, pad, 0, pad+artH)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(pad, pad, Width-2*pad, artH, radius-6)
	dc.Fill()
	drawSigil(dc, Width/2, pad+artH/2, 52, accent, w.Element)

	dc.SetFontFace(basicfont.Face7x13)

	// Name, doubled in size.
	y := pad + artH + 24
	dc.Push()
	dc.Scale(2, 2)
	dc.SetColor(textLight)
	dc.DrawStringAnchored(strings.ToUpper(w.Name), pad/2, y/2, 0, 0.5)
	dc.Pop()

	// Element tag and rarity stars on one line.
	y += 26
	dc.SetColor(accent)
	dc.DrawStringAnchored(strings.ToUpper(string(w.Element)), pad, y, 0, 0.5)
	for i := 0; i < w.Rarity; i++ {
		drawStar(dc, Width-pad-6-float64(i)*15, y, 6, starGold)
	}

	// Stat bars.
	y += 20
	stats := []struct {
		label string
		value int
		clr   color.RGBA
	}{
		{"HP", w.Stats.HP, hpGreen},
		{"ATK", w.Stats.Attack, accent},
		{"DEF", w.Stats.Defense, accent},
		{"SPD", w.Stats.Speed, accent},
	}
	barX := pad + 36
	barW := Width - barX - pad - 34
	for _, s := range stats {
		dc.SetColor(textDim)
		dc.DrawStringAnchored(s.label, pad, y, 0, 0.5)
		dc.SetColor(barTrack)
		dc.DrawRoundedRectangle(barX, y-4, barW, 8, 4)
		dc.Fill()
		frac := math.Min(float64(s.value)/statMax, 1)
		dc.SetColor(s.clr)
		dc.DrawRoundedRectangle(barX, y-4, barW*frac, 8, 4)
		dc.Fill()
		dc.SetColor(textLight)
		dc.DrawStringAnchored(fmt.Sprint(s.value), Width-pad, y, 1, 0.5)
		y += 18
	}

	// Abilities.
	y += 4
	for _, a := range w.Abilities {
		dc.SetColor(accent)
		dc.DrawCircle(pad+3, y, 3)
		dc.Fill()
		dc.SetColor(textLight)
		dc.DrawStringAnchored(a, pad+12, y, 0, 0.5)
		y += 16
	}

	return dc.Image()
}

// drawSigil draws a ringed emblem standing in for the creature's portrait.
func drawSigil(dc *gg.Context, x, y, r float64, clr color.RGBA, e catalog.Element) {
	halo := gg.NewRadialGradient(x, y, 0, x, y, r*1.6)
	halo.AddColorStop(0, color.RGBA{clr.R, clr.G, clr.B, 0x90})
	halo.AddColorStop(1, color.RGBA{clr.R, clr.G, clr.B, 0})
	dc.SetFillStyle(halo)
	dc.DrawCircle(x, y, r*1.6)
	dc.Fill()

	dc.SetColor(color.RGBA{0, 0, 0, 0x80})
	dc.DrawCircle(x, y, r)
	dc.Fill()
	dc.SetColor(clr)
	dc.SetLineWidth(3)
	dc.DrawCircle(x, y, r)
	dc.Stroke()

	sides := 3 + len(e)%4
	dc.SetLineWidth(2)
	dc.DrawRegularPolygon(sides, x, y, r*0.62, -math.Pi/2)
	dc.Stroke()

	initial := "?"
	if e != "" {
		initial = strings.ToUpper(string(e)[:1])
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.Push()
	dc.Scale(3, 3)
	dc.DrawStringAnchored(initial, x/3, y/3, 0.5, 0.35)
	dc.Pop()
}

// drawStar fills a five-point star centered on (x, y).
func drawStar(dc *gg.Context, x, y, r float64, clr color.RGBA) {
	for i := 0; i < 10; i++ {
		rr := r
		if i%2 == 1 {
			rr = r * 0.45
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		px, py := x+rr*math.Cos(a), y+rr*math.Sin(a)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.SetColor(clr)
	dc.Fill()
}

// Thumbnail scales img to width, clamped to MinThumb..MaxThumb, keeping the
// aspect ratio.
func Thumbnail(img image.Image, width int) image.Image {
	if width < MinThumb {
		width = MinThumb
	}
	if width > MaxThumb {
		width = MaxThumb
	}
	if width == img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// PNG renders w at the given width and returns the encoded bytes. A width of
// zero means full size.
func PNG(w catalog.Wraith, width int) ([]byte, error) {
	img := Render(w)
	if width != 0 {
		img = Thumbnail(img, width)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
