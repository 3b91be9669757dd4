package view

import (
	"crypto/md5"
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	scale     = 1.5
	cardW     = 260
	paddingX  = 16
	paddingY  = 12
	titleH    = 28
	stepY     = 22
	markerR   = 5
	valueEdge = cardW - paddingX
)

var (
	background = color.RGBA{36, 41, 46, 255}
	foreground = color.RGBA{219, 219, 219, 255}
	muted      = color.RGBA{201, 188, 188, 255}
)

// WriteCard renders the report as a small SVG card, one row per statistic.
// Each row's marker color is derived from its label so it is stable
// across renders.
func WriteCard(w io.Writer, r Report) error {
	rows := r.rows()
	height := paddingY*2 + titleH + len(rows)*stepY

	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Startview(int(float64(cardW)*scale), int(float64(height)*scale), 0, 0, cardW, height)
	canvas.Roundrect(0, 0, cardW, height, 6, 6, fmt.Sprintf(`fill="%s"`, colorToHex(background)))
	canvas.Text(paddingX, paddingY+14, title,
		fmt.Sprintf(`fill="%s" font-family="Ubuntu Mono" font-size="14" font-weight="bold"`, colorToHex(foreground)))
	canvas.Line(paddingX, paddingY+titleH-6, valueEdge, paddingY+titleH-6,
		fmt.Sprintf(`stroke="%s" stroke-width="1"`, colorToHex(muted)))

	for i, row := range rows {
		y := paddingY + titleH + i*stepY + stepY/2
		canvas.Circle(paddingX+markerR, y, markerR, fmt.Sprintf(`class="marker" fill="%s"`, colorToHex(labelToColor(row.Label))))
		canvas.Text(paddingX+markerR*2+8, y+4, row.Label,
			fmt.Sprintf(`fill="%s" font-family="Ubuntu Mono" font-size="12"`, colorToHex(muted)))
		canvas.Text(valueEdge, y+4, row.Value,
			fmt.Sprintf(`fill="%s" font-family="Ubuntu Mono" font-size="12" font-weight="bold" text-anchor="end"`, colorToHex(foreground)))
	}

	canvas.End()
	return cw.err
}

// errWriter remembers the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.err = err
	return n, err
}

// Marker colors stay in a pastel band so they read on the dark card.
const (
	minSaturation   = 0.5
	saturationRange = 0.3
	minLightness    = 0.6
	lightnessRange  = 0.2
)

// labelToColor derives a stable marker color from the first bytes of the
// label's md5 digest.
func labelToColor(label string) color.RGBA {
	sum := md5.Sum([]byte(label))
	frac := func(b byte) float64 { return float64(b) / 255 }
	return hslToRGB(
		frac(sum[0]),
		minSaturation+frac(sum[1])*saturationRange,
		minLightness+frac(sum[2])*lightnessRange,
	)
}

// hslToRGB converts hue, saturation and lightness, each in [0, 1].
func hslToRGB(h, s, l float64) color.RGBA {
	if s == 0 {
		v := channel(l)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	hi := l + s - l*s
	if l < 0.5 {
		hi = l * (1 + s)
	}
	lo := 2*l - hi

	return color.RGBA{
		R: channel(hueToRGB(lo, hi, h+1.0/3)),
		G: channel(hueToRGB(lo, hi, h)),
		B: channel(hueToRGB(lo, hi, h-1.0/3)),
		A: 255,
	}
}

func channel(v float64) uint8 {
	return uint8(v * 255)
}

// hueToRGB returns one channel for hue offset t, wrapped into [0, 1].
func hueToRGB(lo, hi, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case 6*t < 1:
		return lo + (hi-lo)*6*t
	case 2*t < 1:
		return hi
	case 3*t < 2:
		return lo + (hi-lo)*(2.0/3-t)*6
	}
	return lo
}

func colorToHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
