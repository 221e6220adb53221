// Package canvas provides an embeddable HTML-style 2D rendering context.
//
// # Overview
//
// A Context is a drawing state machine over a surface it owns: paths,
// fills, strokes, images and pixel manipulation are mediated through the
// current drawing State, which Save and Restore push and pop by value.
// Surfaces come from the surface package: a CPU ImageSurface for raster
// devices, or a GPUSurface rendering into a host framebuffer.
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	ctx, err := canvas.NewContext(canvas.NewNonGPUDevice(300, 150, 1, 160))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.SetFillStyle("rebeccapurple")
//	ctx.FillRect(10, 10, 100, 50)
//
//	png, ok := ctx.EncodeSnapshotPNG()
//
// # Sharing
//
// Context is not safe for concurrent use. Wrap it in a Handle to share it
// between goroutines: any number of readers or one writer at a time.
//
// # Images
//
// Decoded images are asset.Asset values. The bitmap package turns encoded
// bytes, raw pixels, image.Image values and ImageData into assets through a
// fixed crop, flip, resize, premultiply and colour space sequence.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Handle, State, Device (this package)
//   - Surfaces: surface (ImageSurface, GPUSurface, registry)
//   - Images: asset, bitmap, codec
//   - Internal: blend (compositing), color (transfer functions), filter
//     (CSS filters and shadows), cache (resolved fonts), parallel (row
//     bands for pixel loops), logging
//   - Command: cmd/canvasctl ingests images through YAML or TOML recipes
//
// # Logging
//
// canvas is silent by default. SetLogger installs a *slog.Logger shared by
// all sub-packages.
package canvas
