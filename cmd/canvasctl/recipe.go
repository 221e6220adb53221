package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/canvas/asset"
	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/codec"
)

// recipe is the on-disk form of an ingestion job.
//
//	input: photo.jpg
//	output: thumb.png
//	crop: {x: 0, y: 0, width: 512, height: 512}
//	resize_width: 128
//	resize_quality: high
//	premultiply_alpha: premultiply
//	color_space_conversion: default
type recipe struct {
	Input   string `yaml:"input" toml:"input"`
	Output  string `yaml:"output" toml:"output"`
	Format  string `yaml:"format" toml:"format"`
	Quality int    `yaml:"quality" toml:"quality"`

	Crop                 *bitmap.Rect         `yaml:"crop" toml:"crop"`
	FlipY                bool                 `yaml:"flip_y" toml:"flip_y"`
	PremultiplyAlpha     bitmap.Tristate      `yaml:"premultiply_alpha" toml:"premultiply_alpha"`
	ColorSpaceConversion bitmap.Tristate      `yaml:"color_space_conversion" toml:"color_space_conversion"`
	ResizeQuality        bitmap.ResizeQuality `yaml:"resize_quality" toml:"resize_quality"`
	ResizeWidth          int                  `yaml:"resize_width" toml:"resize_width"`
	ResizeHeight         int                  `yaml:"resize_height" toml:"resize_height"`
	SourceColorSpace     asset.ColorSpace     `yaml:"source_color_space" toml:"source_color_space"`
	WorkingColorSpace    asset.ColorSpace     `yaml:"working_color_space" toml:"working_color_space"`
}

// loadRecipe reads a recipe, choosing the syntax by file extension.
func loadRecipe(path string) (*recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRecipe(data, filepath.Ext(path))
}

// parseRecipe decodes data as YAML (".yaml", ".yml") or TOML (".toml").
// Unknown keys are errors.
func parseRecipe(data []byte, ext string) (*recipe, error) {
	r := &recipe{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(r); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("recipe: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(r); err != nil {
			return nil, fmt.Errorf("recipe: %w", err)
		}
	default:
		return nil, fmt.Errorf("recipe: unsupported syntax %q, want .yaml or .toml", ext)
	}
	return r, nil
}

// options converts the recipe to pipeline options.
func (r *recipe) options() *bitmap.Options {
	return &bitmap.Options{
		SourceRect:           r.Crop,
		FlipY:                r.FlipY,
		PremultiplyAlpha:     r.PremultiplyAlpha,
		ColorSpaceConversion: r.ColorSpaceConversion,
		ResizeQuality:        r.ResizeQuality,
		ResizeWidth:          r.ResizeWidth,
		ResizeHeight:         r.ResizeHeight,
		SourceColorSpace:     r.SourceColorSpace,
		WorkingColorSpace:    r.WorkingColorSpace,
	}
}

// format resolves the output format: the recipe's format key, else the
// output file extension.
func (r *recipe) format() (codec.Format, error) {
	name := r.Format
	if name == "" {
		name = filepath.Ext(r.Output)
	}
	f, ok := codec.ParseFormat(name)
	if !ok {
		return codec.FormatUnknown, fmt.Errorf("%w: %q", codec.ErrUnknownFormat, name)
	}
	return f, nil
}
