package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/asset"
	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/codec"
)

func TestParseRecipe(t *testing.T) {
	yamlRecipe := `
input: in.png
output: out.jpg
quality: 80
crop: {x: 1, y: 2, width: 10, height: -5}
flip_y: true
premultiply_alpha: premultiply
color_space_conversion: none
resize_quality: pixelated
resize_width: 64
working_color_space: srgb-linear
`
	tomlRecipe := `
input = "in.png"
output = "out.jpg"
quality = 80
flip_y = true
premultiply_alpha = "premultiply"
color_space_conversion = "none"
resize_quality = "pixelated"
resize_width = 64
working_color_space = "srgb-linear"

[crop]
x = 1.0
y = 2.0
width = 10.0
height = -5.0
`
	for _, tt := range []struct{ ext, data string }{
		{".yaml", yamlRecipe},
		{".toml", tomlRecipe},
	} {
		t.Run(tt.ext, func(t *testing.T) {
			r, err := parseRecipe([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("parseRecipe() error = %v", err)
			}
			o := r.options()
			if o.SourceRect == nil || *o.SourceRect != (bitmap.Rect{X: 1, Y: 2, Width: 10, Height: -5}) {
				t.Errorf("SourceRect = %+v", o.SourceRect)
			}
			if !o.FlipY || o.PremultiplyAlpha != bitmap.On || o.ColorSpaceConversion != bitmap.Off {
				t.Errorf("policies = %v %v %v", o.FlipY, o.PremultiplyAlpha, o.ColorSpaceConversion)
			}
			if o.ResizeQuality != bitmap.ResizeNearest || o.ResizeWidth != 64 || o.ResizeHeight != 0 {
				t.Errorf("resize = %v %dx%d", o.ResizeQuality, o.ResizeWidth, o.ResizeHeight)
			}
			if o.WorkingColorSpace != asset.ColorSpaceLinearSRGB {
				t.Errorf("WorkingColorSpace = %v", o.WorkingColorSpace)
			}
			if f, err := r.format(); err != nil || f != codec.FormatJPEG {
				t.Errorf("format() = %v, %v, want jpeg", f, err)
			}
		})
	}
}

func TestParseRecipeErrors(t *testing.T) {
	tests := []struct {
		name, ext, data string
	}{
		{"unknown yaml key", ".yaml", "input: a.png\nsharpen: 3\n"},
		{"unknown toml key", ".toml", "sharpen = 3\n"},
		{"bad policy", ".yaml", "premultiply_alpha: sometimes\n"},
		{"bad quality", ".toml", "resize_quality = \"ultra\"\n"},
		{"bad syntax", ".json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRecipe([]byte(tt.data), tt.ext); err == nil {
				t.Error("parseRecipe() succeeded, want error")
			}
		})
	}

	r, err := parseRecipe(nil, ".yaml")
	if err != nil || r.Input != "" {
		t.Errorf("empty YAML recipe = %+v, %v", r, err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 100, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIngestCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 20, 10)
	recipePath := filepath.Join(dir, "thumb.toml")
	rec := "crop = { x = 0.0, y = 0.0, width = 10.0, height = 10.0 }\nresize_width = 5\nresize_quality = \"pixelated\"\n"
	if err := os.WriteFile(recipePath, []byte(rec), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")

	var stderr bytes.Buffer
	if err := run([]string{"ingest", "-recipe", recipePath, "-in", in, "-out", out}, &stderr); err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(stderr.String(), "(5x5)") {
		t.Errorf("stderr = %q, want size report", stderr.String())
	}
	a := asset.Load(out)
	if a.Width() != 5 || a.Height() != 5 {
		t.Errorf("output = %dx%d, want 5x5", a.Width(), a.Height())
	}
	// Nearest sampling keeps source values exactly.
	if px := a.Pixels()[:4]; px[0]%10 != 0 || px[1]%10 != 0 || px[2] != 100 || px[3] != 255 {
		t.Errorf("pixel (0,0) = %v, want an unfiltered source pixel", px)
	}
}

func TestIngestErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 4, 4)

	tests := []struct {
		name string
		r    recipe
	}{
		{"missing output", recipe{Input: in}},
		{"unknown format", recipe{Input: in, Output: filepath.Join(dir, "out.xyz")}},
		{"missing input", recipe{Input: filepath.Join(dir, "nope.png"), Output: filepath.Join(dir, "o.png")}},
		{"empty crop", recipe{Input: in, Output: filepath.Join(dir, "o.png"), Crop: &bitmap.Rect{X: 10, Y: 10, Width: 2, Height: 2}}},
		{"webp output", recipe{Input: in, Output: filepath.Join(dir, "o.webp")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ingest(&tt.r); err == nil {
				t.Error("ingest() succeeded, want error")
			}
		})
	}
}

func TestDemoCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.png")
	var stderr bytes.Buffer
	if err := run([]string{"demo", "-width", "160", "-height", "120", "-output", out}, &stderr); err != nil {
		t.Fatalf("demo error = %v", err)
	}
	a := asset.Load(out)
	if a.Width() != 160 || a.Height() != 120 {
		t.Fatalf("demo = %dx%d, want 160x120", a.Width(), a.Height())
	}
	// The background covers the whole image.
	if a.Pixels()[3] != 255 {
		t.Errorf("background alpha = %d, want 255", a.Pixels()[3])
	}
}

func TestDrawSceneScalesWithDensity(t *testing.T) {
	dc, err := canvas.NewContext(canvas.NewNonGPUDevice(80, 60, 2, 320))
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()
	drawScene(dc)
	if dc.Width() != 80 || dc.StateDepth() != 0 {
		t.Errorf("Width() = %d StateDepth() = %d, want 80 0", dc.Width(), dc.StateDepth())
	}
}

func TestRunUsage(t *testing.T) {
	var stderr bytes.Buffer
	if err := run(nil, &stderr); err == nil {
		t.Error("run() without command succeeded")
	}
	if err := run([]string{"paint"}, &stderr); err == nil {
		t.Error("run(paint) succeeded")
	}
	if err := run([]string{"help"}, &stderr); err != nil {
		t.Errorf("run(help) error = %v", err)
	}
	if !strings.Contains(stderr.String(), "ingest") {
		t.Errorf("usage = %q", stderr.String())
	}
}
