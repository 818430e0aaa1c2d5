package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kevin-cantwell/brailleimg/dither"
	"gopkg.in/yaml.v3"
)

// options are the fully resolved settings for one run.
type options struct {
	Width           int // 0 when unset
	Height          int // 0 when unset
	Frame           int
	Dithering       string
	AllowBlankChars bool
	Invert          bool
	Contrast        float64
	Brighten        float64
	Gamma           float64
	Sharpen         float64
	Fit             bool
	Verbose         int
}

func defaultOptions() options {
	return options{
		Dithering: dither.DefaultName,
		Gamma:     1.0,
	}
}

// fileConfig mirrors options as read from a YAML config file. Nil fields were
// not present in the file.
type fileConfig struct {
	Width           *int     `yaml:"width"`
	Height          *int     `yaml:"height"`
	Frame           *int     `yaml:"frame"`
	Dithering       *string  `yaml:"dithering"`
	AllowBlankChars *bool    `yaml:"allow_blank_chars"`
	Invert          *bool    `yaml:"invert"`
	Contrast        *float64 `yaml:"contrast"`
	Brighten        *float64 `yaml:"brighten"`
	Gamma           *float64 `yaml:"gamma"`
	Sharpen         *float64 `yaml:"sharpen"`
	Fit             *bool    `yaml:"fit"`
	Verbose         *int     `yaml:"verbose"`
}

func loadConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseConfig(f)
}

func parseConfig(r io.Reader) (*fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &fc, nil
}

// settings is the subset of *cli.Context used to read flags.
type settings interface {
	IsSet(name string) bool
	Int(name string) int
	Float64(name string) float64
	Bool(name string) bool
	String(name string) string
}

// envVar returns the environment variable that may stand in for a flag.
func envVar(flag string) string {
	return "BRAILLE_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// resolveOptions layers flags and their environment variables over the
// config file over the defaults, then validates the result.
func resolveOptions(s settings, fc *fileConfig) (options, error) {
	o := defaultOptions()
	if fc == nil {
		fc = &fileConfig{}
	}
	set := func(name string) bool {
		return s.IsSet(name) || os.Getenv(envVar(name)) != ""
	}

	sizes := []struct {
		flag string
		file *int
		dst  *int
	}{
		{"width", fc.Width, &o.Width},
		{"height", fc.Height, &o.Height},
	}
	for _, sz := range sizes {
		switch {
		case set(sz.flag):
			*sz.dst = s.Int(sz.flag)
		case sz.file != nil:
			*sz.dst = *sz.file
		default:
			continue
		}
		if *sz.dst <= 0 {
			return o, fmt.Errorf("%s must be a positive integer, got %d", sz.flag, *sz.dst)
		}
	}

	ints := []struct {
		flag string
		file *int
		dst  *int
	}{
		{"frame", fc.Frame, &o.Frame},
		{"verbose", fc.Verbose, &o.Verbose},
	}
	for _, i := range ints {
		if set(i.flag) {
			*i.dst = s.Int(i.flag)
		} else if i.file != nil {
			*i.dst = *i.file
		}
		if *i.dst < 0 {
			return o, fmt.Errorf("%s cannot be negative, got %d", i.flag, *i.dst)
		}
	}

	floats := []struct {
		flag string
		file *float64
		dst  *float64
	}{
		{"contrast", fc.Contrast, &o.Contrast},
		{"brighten", fc.Brighten, &o.Brighten},
		{"gamma", fc.Gamma, &o.Gamma},
		{"sharpen", fc.Sharpen, &o.Sharpen},
	}
	for _, f := range floats {
		if set(f.flag) {
			*f.dst = s.Float64(f.flag)
		} else if f.file != nil {
			*f.dst = *f.file
		}
	}
	if o.Gamma <= 0 {
		return o, fmt.Errorf("gamma must be greater than 0, got %g", o.Gamma)
	}
	if o.Sharpen < 0 {
		return o, fmt.Errorf("sharpen cannot be negative, got %g", o.Sharpen)
	}

	bools := []struct {
		flag string
		file *bool
		dst  *bool
	}{
		{"allow-blank-chars", fc.AllowBlankChars, &o.AllowBlankChars},
		{"invert", fc.Invert, &o.Invert},
		{"fit", fc.Fit, &o.Fit},
	}
	for _, b := range bools {
		if set(b.flag) {
			*b.dst = s.Bool(b.flag)
		} else if b.file != nil {
			*b.dst = *b.file
		}
	}

	if set("dithering") {
		o.Dithering = s.String("dithering")
	} else if fc.Dithering != nil {
		o.Dithering = *fc.Dithering
	}
	if _, err := dither.Lookup(o.Dithering); err != nil {
		return o, err
	}
	return o, nil
}
