package main

import (
	"bytes"
	"context"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("run", func() {
	var (
		out    bytes.Buffer
		logger *slog.Logger
		o      options
		black  []byte
	)

	BeforeEach(func() {
		out.Reset()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		o = defaultOptions()
		o.Dithering = "none"
		o.Width = 4
		black = encodePNG(image.NewGray(image.Rect(0, 0, 4, 8)))
	})

	render := func(in input, stdin io.Reader) string {
		Expect(run(context.Background(), o, in, stdin, &out, http.DefaultClient, logger)).To(Succeed())
		return out.String()
	}

	It("draws light pixels by default", func() {
		Expect(render(input{kind: inputStdin}, bytes.NewReader(black))).To(Equal("⠄⠄\n⠄⠄\n"))
	})

	It("draws dark pixels when inverted", func() {
		o.Invert = true
		Expect(render(input{kind: inputStdin}, bytes.NewReader(black))).To(Equal("⣿⣿\n⣿⣿\n"))
	})

	It("can keep blank characters", func() {
		o.AllowBlankChars = true
		Expect(render(input{kind: inputStdin}, bytes.NewReader(black))).To(Equal("⠀⠀\n⠀⠀\n"))
	})

	It("is 64 dots wide without a size", func() {
		o.Width = 0
		row := strings.Repeat("⠄", 32) + "\n"
		Expect(render(input{kind: inputStdin}, bytes.NewReader(black))).To(Equal(strings.Repeat(row, 32)))
	})

	It("scales to the requested size", func() {
		o.Invert = true
		o.Width = 2
		Expect(render(input{kind: inputStdin}, bytes.NewReader(black))).To(Equal("⣿\n"))
	})

	It("renders images from urls", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write(black)
		}))
		DeferCleanup(server.Close)

		in, err := parseInput(server.URL + "/black.png")
		Expect(err).NotTo(HaveOccurred())
		o.Invert = true
		Expect(render(in, nil)).To(Equal("⣿⣿\n⣿⣿\n"))
	})

	It("renders the selected frame", func() {
		o.Frame = 1
		o.Width = 2
		o.Height = 4
		o.Invert = true
		Expect(render(input{kind: inputStdin}, bytes.NewReader(twoFrameGIF()))).To(Equal("⣿\n"))
	})

	It("fails on unreadable input", func() {
		err := run(context.Background(), o, input{kind: inputStdin}, bytes.NewReader([]byte("nope")), &out, http.DefaultClient, logger)
		Expect(err).To(MatchError(ContainSubstring("decoding image")))
		Expect(out.Len()).To(BeZero())
	})
})
