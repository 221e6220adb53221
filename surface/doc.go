// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the pixel surfaces a canvas renders into.
//
// A Surface is exclusively owned by one rendering context. Two
// implementations ship with the package:
//
//   - ImageSurface: CPU rendering into premultiplied RGBA memory. Path
//     coverage comes from golang.org/x/image/vector; compositing uses the
//     canvas composite operations.
//   - GPUSurface: a thin wrapper over a host supplied GPUBackend bound to a
//     framebuffer of the host's graphics context.
//
// Snapshot returns an immutable Image. Snapshots share pixel memory with the
// surface until the next write, at which point the surface copies its
// pixels first.
//
// # Registry
//
// Surfaces are created by name through the registry:
//
//	s, err := surface.NewSurfaceByName("raster", surface.Options{Width: 300, Height: 150})
//
// Hosts register additional backends with Register.
package surface
