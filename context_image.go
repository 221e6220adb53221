package canvas

import (
	"fmt"
	"image"

	"github.com/gogpu/canvas/asset"
	icolor "github.com/gogpu/canvas/internal/color"
	"github.com/gogpu/canvas/surface"
)

// DrawImage draws img at its natural size with its top-left corner at
// (dx, dy).
func (c *Context) DrawImage(img image.Image, dx, dy float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.drawImage(img, nil, dx, dy, float64(b.Dx()), float64(b.Dy()))
}

// DrawImageScaled draws img scaled into the dw x dh rectangle at (dx, dy).
func (c *Context) DrawImageScaled(img image.Image, dx, dy, dw, dh float64) {
	c.drawImage(img, nil, dx, dy, dw, dh)
}

// DrawImageRect draws the (sx, sy, sw, sh) part of img into the
// (dx, dy, dw, dh) rectangle. Source coordinates are relative to the
// image's top-left corner.
func (c *Context) DrawImageRect(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if img == nil || !finite(sx, sy, sw, sh) || sw == 0 || sh == 0 {
		return
	}
	if sw < 0 {
		sx, sw = sx+sw, -sw
	}
	if sh < 0 {
		sy, sh = sy+sh, -sh
	}
	origin := img.Bounds().Min
	sr := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh)).Add(origin)
	c.drawImage(img, &sr, dx, dy, dw, dh)
}

func (c *Context) drawImage(img image.Image, sr *image.Rectangle, dx, dy, dw, dh float64) {
	if c.closed || img == nil || !finite(dx, dy, dw, dh) || dw == 0 || dh == 0 {
		return
	}
	c.surface.DrawImage(img, surface.Pt(dx, dy), &surface.DrawImageOptions{
		SrcRect:   sr,
		DstWidth:  dw,
		DstHeight: dh,
		Filter:    c.state.ImageFilterQuality(),
		Paint:     c.state.imagePaint(),
	})
}

// DrawAsset draws an image asset at (dx, dy). The empty asset draws
// nothing.
func (c *Context) DrawAsset(a *asset.Asset, dx, dy float64) {
	if a.IsEmpty() {
		return
	}
	c.DrawImage(a.Image(), dx, dy)
}

// CreateImageData allocates transparent black image data.
func (c *Context) CreateImageData(width, height int) (*asset.ImageData, error) {
	return asset.NewImageData(width, height)
}

// GetImageData copies a rectangle of the surface as unpremultiplied RGBA.
// Pixels outside the surface are transparent black. A negative width or
// height extends the rectangle left or up.
func (c *Context) GetImageData(sx, sy, sw, sh int) (*asset.ImageData, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if sw < 0 {
		sx, sw = sx+sw, -sw
	}
	if sh < 0 {
		sy, sh = sy+sh, -sh
	}
	d, err := asset.NewImageData(sw, sh)
	if err != nil {
		return nil, err
	}
	c.Flush()
	if err := c.surface.ReadPixels(d.Info(), d.Data, sw*4, sx, sy); err != nil {
		return nil, fmt.Errorf("canvas: get image data: %w", err)
	}
	return d, nil
}

// PutImageData replaces the pixels at (dx, dy) with d, ignoring alpha,
// compositing, shadows and filters.
func (c *Context) PutImageData(d *asset.ImageData, dx, dy int) {
	if d == nil {
		return
	}
	c.PutImageDataDirty(d, dx, dy, 0, 0, d.Width, d.Height)
}

// PutImageDataDirty is PutImageData limited to the dirty rectangle of d.
func (c *Context) PutImageDataDirty(d *asset.ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int) {
	if c.closed || !d.Valid() {
		return
	}
	dirty := image.Rect(dirtyX, dirtyY, dirtyX+dirtyW, dirtyY+dirtyH).Canon().
		Intersect(image.Rect(0, 0, d.Width, d.Height))
	if dirty.Empty() {
		return
	}
	pix := append([]byte(nil), d.Data...)
	icolor.Premultiply(pix)
	src := &image.RGBA{Pix: pix, Stride: d.Width * 4, Rect: image.Rect(0, 0, d.Width, d.Height)}

	x, y := float64(dx+dirty.Min.X), float64(dy+dirty.Min.Y)
	w, h := float64(dirty.Dx()), float64(dirty.Dy())
	c.surface.Fill(rectPath(x, y, w, h), &surface.Paint{
		Color: opaqueBlack,
		Alpha: 1,
		Op:    surface.CompositeDestinationOut,
	})
	c.surface.DrawImage(src, surface.Pt(x, y), &surface.DrawImageOptions{
		SrcRect: &dirty,
		Paint:   surface.DefaultPaint(),
	})
}
