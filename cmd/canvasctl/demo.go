package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/codec"
)

func demoCmd(args []string, stderr io.Writer) error {
	fs := newFlagSet("demo", stderr)
	var (
		width   = fs.Float64("width", 800, "image width")
		height  = fs.Float64("height", 600, "image height")
		density = fs.Float64("density", 1, "device pixel ratio")
		output  = fs.String("output", "demo.png", "output file")
		v       = fs.Bool("v", false, "log surface events to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v, stderr)

	dc, err := canvas.NewContext(canvas.NewNonGPUDevice(float32(*width), float32(*height), float32(*density), 160))
	if err != nil {
		return err
	}
	defer dc.Close()

	drawScene(dc)

	if err := dc.ReadPixelsAsImage().Save(*output, codec.FormatUnknown); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Fprintf(stderr, "demo saved to %s (%dx%d)\n", *output, dc.Width(), dc.Height())
	return nil
}

// drawScene draws the demo into dc, scaled to its surface.
func drawScene(dc *canvas.Context) {
	w, h := float64(dc.Width()), float64(dc.Height())
	drawBackground(dc, w, h)

	s := math.Min(w/800, h/600)
	drawShapes(dc, s)
	drawLines(dc, s)
	drawCompositing(dc, s)
}

func drawBackground(dc *canvas.Context, w, h float64) {
	steps := 100
	for i := range steps {
		t := float64(i) / float64(steps)
		dc.SetFillColor(canvas.HSL(220-t*40, 0.5, 0.2+t*0.2))
		dc.FillRect(0, h*t, w, h/float64(steps)+1)
	}
}

func drawShapes(dc *canvas.Context, s float64) {
	circles := []struct {
		x, y  float64
		color string
	}{
		{150, 150, "rgba(255, 77, 77, 0.8)"},
		{200, 150, "rgba(77, 255, 77, 0.8)"},
		{175, 200, "rgba(77, 77, 255, 0.8)"},
	}
	for _, c := range circles {
		dc.BeginPath()
		dc.Arc(c.x*s, c.y*s, 60*s, 0, 2*math.Pi, false)
		dc.SetFillStyle(c.color)
		dc.Fill()
	}

	dc.Save()
	dc.SetShadowColor("rgba(0, 0, 0, 0.5)")
	dc.SetShadowBlur(8 * s)
	dc.SetShadowOffsetX(4 * s)
	dc.SetShadowOffsetY(4 * s)
	dc.SetFillStyle("gold")
	dc.FillRect(350*s, 100*s, 120*s, 80*s)
	dc.Restore()

	dc.SetStrokeStyle("white")
	dc.SetLineWidth(4 * s)
	dc.StrokeRect(350*s, 100*s, 120*s, 80*s)

	// Star.
	dc.BeginPath()
	for i := range 10 {
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		x, y := (600+r*math.Cos(a))*s, (150+r*math.Sin(a))*s
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetFillStyle("hsl(50, 100%, 50%)")
	dc.Fill()
}

func drawLines(dc *canvas.Context, s float64) {
	dc.Save()
	dc.SetStrokeStyle("#ff8000")
	dc.SetLineWidth(6 * s)
	dc.SetLineCap("round")
	dc.BeginPath()
	dc.MoveTo(150*s, 400*s)
	dc.BezierCurveTo(200*s, 350*s, 250*s, 450*s, 300*s, 400*s)
	dc.QuadraticCurveTo(350*s, 370*s, 450*s, 400*s)
	dc.Stroke()

	dc.SetLineDash([]float64{12 * s, 6 * s})
	dc.SetLineJoin("round")
	dc.SetStrokeStyle("white")
	dc.SetLineWidth(3 * s)
	dc.BeginPath()
	dc.Rect(120*s, 470*s, 360*s, 80*s)
	dc.Stroke()
	dc.Restore()
}

func drawCompositing(dc *canvas.Context, s float64) {
	dc.Save()
	dc.SetFilter(fmt.Sprintf("blur(%gpx)", 2*s))
	dc.SetFillStyle("tomato")
	dc.FillRect(560*s, 380*s, 120*s, 120*s)
	dc.SetFilter("none")

	dc.SetGlobalCompositeOperation("lighter")
	dc.SetGlobalAlpha(0.7)
	dc.SetFillStyle("steelblue")
	dc.FillRect(620*s, 440*s, 120*s, 120*s)
	dc.Restore()

	dc.ClearRect(570*s, 390*s, 20*s, 20*s)
}
