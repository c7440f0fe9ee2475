package console

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// The brain screen font covers printable ASCII only. Charmap converts
// between UTF-8 text and the byte repertoire the screen accepts, replacing
// everything else.

const rcd = '�' // decoding replacement character
const rce = '?' // encoding replacement character

type charmap struct{}

var Charmap encoding.Encoding = &charmap{}

func (m *charmap) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decoder{}}
}

func (m *charmap) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{}}
}

func printable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

type decoder struct{}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for _, c := range src {
		r := rune(c)
		if !printable(c) {
			r = rcd
		}
		if utf8.RuneLen(r) > len(dst)-nDst {
			err = transform.ErrShortDst
			break
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return
}

func (d *decoder) Reset() {}

type encoder struct{}

func (d *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			err = transform.ErrShortSrc
			break
		}
		if nDst >= len(dst) {
			err = transform.ErrShortDst
			break
		}
		if r < 0x80 && printable(byte(r)) {
			dst[nDst] = byte(r)
		} else {
			dst[nDst] = rce
		}
		nDst++
		nSrc += size
	}
	return
}

func (d *encoder) Reset() {}
