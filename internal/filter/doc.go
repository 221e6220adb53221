// Package filter implements the CSS filter functions and canvas shadows on
// premultiplied *image.RGBA layers.
//
// A layer is the rendering of a single drawing operation before it is
// composited onto the surface. Filters run in place on that layer:
//   - Gaussian blur (separable, kernels cached per sigma)
//   - colour matrices for brightness, contrast, grayscale, hue-rotate,
//     invert, opacity, saturate and sepia
//   - drop shadows (alpha extract + offset + blur + tint)
package filter
