package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kevin-cantwell/brailleimg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type inputKind int

const (
	inputStdin inputKind = iota
	inputFile
	inputURL
)

// input is where the image is read from.
type input struct {
	kind inputKind
	path string
	url  *url.URL
}

// parseInput interprets the positional argument as "-" (or nothing) for
// stdin, a path to an existing file, or an http(s) URL, in that order.
func parseInput(arg string) (input, error) {
	if arg == "" || arg == "-" {
		return input{kind: inputStdin}, nil
	}

	if fi, err := os.Stat(arg); err == nil {
		if !fi.Mode().IsRegular() {
			return input{}, fmt.Errorf("%s: the given path exists but is not a file", arg)
		}
		return input{kind: inputFile, path: arg}, nil
	}

	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return input{}, fmt.Errorf("%s: the given input was not a valid argument", arg)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return input{kind: inputURL, url: u}, nil
	}
	return input{}, fmt.Errorf("%s: the given URL must be either http or https", arg)
}

// read returns the raw bytes of the image.
func (in input) read(ctx context.Context, client *http.Client, stdin io.Reader) ([]byte, error) {
	switch in.kind {
	case inputFile:
		return os.ReadFile(in.path)
	case inputURL:
		return fetch(ctx, client, in.url)
	}
	return io.ReadAll(stdin)
}

// ErrBadURL is returned for URLs that cannot be requested.
var ErrBadURL = errors.New("the provided URL was not valid")

// StatusError is returned when the server responds with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: the server's response was bad: %s", e.URL, e.Status)
}

const acceptedTypes = "image/png,image/jpeg,image/webp,image/gif,image/tiff,image/bmp"

func fetch(ctx context.Context, client *http.Client, u *url.URL) ([]byte, error) {
	if u.Host == "" {
		return nil, ErrBadURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	req.Header.Set("Accept", acceptedTypes)
	req.Header.Set("Referer", u.Scheme+"://"+u.Host+"/")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", appName+"/"+version)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: reading body: %w", u, err)
	}
	return data, nil
}

// decode decodes frame n of the image in data. Only gifs have more than one
// frame; other formats are decoded with their EXIF orientation applied.
func decode(data []byte, n int) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	if format == "gif" {
		giff, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("decoding gif: %w", err)
		}
		img, err := brailleimg.Frame(giff, n)
		return img, format, err
	}

	if n != 0 {
		return nil, format, fmt.Errorf("%w: %d of 1", brailleimg.ErrNoSuchFrame, n)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, fmt.Errorf("decoding %s: %w", format, err)
	}
	return img, format, nil
}
