package render

import (
	"image"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"

	"wallgauge/internal/regions"
)

var font *truetype.Font

// init sets up the font used for region labels.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// goldenAngle spreads region hues around the color wheel so that
// consecutive labels stay visually distinct.
const goldenAngle = 137.5

const (
	labelFontSize   = 16
	regionStroke    = 2.0
	referenceStroke = 4.0
	centroidRadius  = 4.0
)

// Overlay draws the extracted regions onto a copy of src: each region gets
// its bounding box stroked in a per-label hue, a red centroid dot, and its
// label number next to the centroid. refIndex marks the position of the
// calibration reference within set, drawn with a doubled stroke; pass -1
// when no reference is known. src is never modified.
func Overlay(src image.Image, set regions.RegionSet, refIndex int) *image.RGBA {
	dc := gg.NewContextForImage(src)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: labelFontSize}))

	for i, region := range set {
		hue := regionColor(i)

		stroke := regionStroke
		if i == refIndex {
			stroke = referenceStroke
		}
		dc.SetRGB(hue.R, hue.G, hue.B)
		dc.SetLineWidth(stroke)
		dc.DrawRectangle(
			float64(region.BBox.MinCol),
			float64(region.BBox.MinRow),
			float64(region.BBox.MaxCol-region.BBox.MinCol),
			float64(region.BBox.MaxRow-region.BBox.MinRow),
		)
		dc.Stroke()

		dc.SetRGB(1, 0, 0)
		dc.DrawCircle(region.Centroid.Col, region.Centroid.Row, centroidRadius)
		dc.Fill()

		dc.SetRGB(hue.R, hue.G, hue.B)
		dc.DrawString(strconv.Itoa(region.Label), region.Centroid.Col+6, region.Centroid.Row-6)
	}

	out, ok := dc.Image().(*image.RGBA)
	if !ok {
		b := dc.Image().Bounds()
		out = image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.Set(x, y, dc.Image().At(x, y))
			}
		}
	}
	return out
}

// regionColor picks a saturated hue for the i-th region by stepping the
// golden angle around the HSV wheel.
func regionColor(i int) colorful.Color {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	return colorful.Hsv(hue, 0.85, 0.95)
}
