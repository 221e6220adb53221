package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = byte(i*10), 100, 200, 255
	}
	return img
}

func encode(t *testing.T, f Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Default().Encode(&buf, testImage(), f, 100); err != nil {
		t.Fatalf("Encode(%v) error = %v", f, err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF} {
		if got := Sniff(encode(t, f)); got != f {
			t.Errorf("Sniff(%v data) = %v", f, got)
		}
	}
	if got := Sniff([]byte("hello world, not an image")); got != FormatUnknown {
		t.Errorf("Sniff(text) = %v, want unknown", got)
	}
}

func TestDecodeLossless(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			img, err := Default().Decode(encode(t, f))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Fatalf("Decode() bounds = %v", img.Bounds())
			}
			got := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA)
			if got != (color.NRGBA{40, 100, 200, 255}) {
				t.Errorf("pixel (1,0) = %v, want {40 100 200 255}", got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Default().Decode(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Decode(nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := Default().Decode([]byte("garbage")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(garbage) error = %v, want ErrUnknownFormat", err)
	}
	png := encode(t, FormatPNG)
	if _, err := Default().Decode(png[:len(png)/2]); err == nil {
		t.Error("Decode(truncated png) succeeded")
	}
}

func TestEncodeWebPUnsupported(t *testing.T) {
	err := Default().Encode(&bytes.Buffer{}, testImage(), FormatWebP, 90)
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Encode(webp) error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", FormatPNG, true},
		{".JPG", FormatJPEG, true},
		{"image/webp", FormatWebP, true},
		{"tif", FormatTIFF, true},
		{"heic", FormatUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatExtension(t *testing.T) {
	if got := FormatJPEG.Extension(); got != ".jpg" {
		t.Errorf("FormatJPEG.Extension() = %q", got)
	}
	if got := FormatPNG.Extension(); got != ".png" {
		t.Errorf("FormatPNG.Extension() = %q", got)
	}
}
