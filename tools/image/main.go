// Package image converts images for display on the brain screen.
package image

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"
)

// Screen dimensions of the brain.
const (
	ScreenW = 480
	ScreenH = 272
)

var (
	flags = flag.NewFlagSet("image", flag.ExitOnError)

	format  = flags.String("format", "rgb565", "rgb565 | ci8")
	fit     = flags.Bool("fit", false, "scale the image to the screen size")
	palette = flags.Int("palette", 256, "number of colors in ci8 format")

	imagefile string
)

const usageString = `Image to V5 screen converter.

Usage: %s [flags] <image>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "image")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		imagefile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	if *fit {
		dst := image.NewRGBA(image.Rect(0, 0, ScreenW, ScreenH))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	var data []byte
	switch *format {
	case "rgb565":
		data = toRGB565(img)
	case "ci8":
		data, err = toCI8(img, *palette)
		if err != nil {
			log.Fatalln(err)
		}
	default:
		log.Fatalf("unsupported format: %s", *format)
	}

	outfile := strings.TrimSuffix(imagefile, filepath.Ext(imagefile)) + ".bin"
	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		log.Fatalln(err)
	}
}

func rgb565(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)
}

// toRGB565 packs the image into the little endian 16 bit format of the
// screen's framebuffer.
func toRGB565(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = binary.LittleEndian.AppendUint16(out, rgb565(img.At(x, y)))
		}
	}
	return out
}

// toCI8 emits a palette of up to n RGB565 entries followed by one index per
// pixel.
func toCI8(img image.Image, n int) ([]byte, error) {
	if n < 2 || n > 256 {
		return nil, fmt.Errorf("palette size out of range: %d", n)
	}
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, n), img)

	out := make([]byte, 0, 256*2+img.Bounds().Dx()*img.Bounds().Dy())
	for i := 0; i < 256; i++ {
		var entry uint16
		if i < len(pal) {
			entry = rgb565(pal[i])
		}
		out = binary.LittleEndian.AppendUint16(out, entry)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, byte(pal.Index(img.At(x, y))))
		}
	}
	return out, nil
}
