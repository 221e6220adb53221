package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/canvas/bitmap"
)

func ingestCmd(args []string, stderr io.Writer) error {
	fs := newFlagSet("ingest", stderr)
	var (
		recipePath = fs.String("recipe", "", "YAML or TOML recipe file")
		in         = fs.String("in", "", "input image (overrides the recipe)")
		out        = fs.String("out", "", "output image (overrides the recipe)")
		v          = fs.Bool("v", false, "log pipeline stages to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v, stderr)

	r := &recipe{}
	if *recipePath != "" {
		var err error
		if r, err = loadRecipe(*recipePath); err != nil {
			return err
		}
	}
	if *in != "" {
		r.Input = *in
	}
	if *out != "" {
		r.Output = *out
	}
	w, h, err := ingest(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s (%dx%d)\n", r.Output, w, h)
	return nil
}

// ingest runs r and writes its output file.
func ingest(r *recipe) (width, height int, err error) {
	if r.Input == "" || r.Output == "" {
		return 0, 0, fmt.Errorf("ingest: input and output are required")
	}
	f, err := r.format()
	if err != nil {
		return 0, 0, err
	}
	data, err := os.ReadFile(r.Input)
	if err != nil {
		return 0, 0, err
	}
	a := bitmap.FromEncoded(data, r.options())
	if a.IsEmpty() {
		return 0, 0, fmt.Errorf("ingest %s: %w", r.Input, a.Err())
	}
	quality := r.Quality
	if quality <= 0 {
		quality = 90
	}
	enc, err := a.Encode(f, quality)
	if err != nil {
		return 0, 0, fmt.Errorf("encode %s: %w", r.Output, err)
	}
	if err := os.WriteFile(r.Output, enc, 0o644); err != nil {
		return 0, 0, err
	}
	return a.Width(), a.Height(), nil
}
