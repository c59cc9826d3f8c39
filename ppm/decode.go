package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

var errFormat = errors.New("ppm: invalid format")

// maxPixels bounds the allocation a header can request.
const maxPixels = 1 << 28

type reader struct {
	r *bufio.Reader
}

// token returns the next whitespace separated token, skipping # comments.
func (rd *reader) token() (string, error) {
	var tok []byte
	for {
		c, err := rd.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}

		switch {
		case c == '#' && len(tok) == 0:
			if _, err := rd.r.ReadBytes('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (rd *reader) int(what string, limit int) (int, error) {
	tok, err := rd.token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("could not read %s: %w", what, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 || n > limit {
		return 0, fmt.Errorf("%w: bad %s %q", errFormat, what, tok)
	}
	return n, nil
}

func (rd *reader) header() (w, h, maxv int, err error) {
	tok, err := rd.token()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("could not read magic: %w", err)
	}
	if tok != magic {
		return 0, 0, 0, fmt.Errorf("%w: magic %q", errFormat, tok)
	}
	if w, err = rd.int("width", 1<<24); err != nil {
		return 0, 0, 0, err
	}
	if h, err = rd.int("height", 1<<24); err != nil {
		return 0, 0, 0, err
	}
	if maxv, err = rd.int("max value", 65535); err != nil {
		return 0, 0, 0, err
	}
	if w == 0 || h == 0 || maxv == 0 {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d max %d", errFormat, w, h, maxv)
	}
	if w > maxPixels/h {
		return 0, 0, 0, fmt.Errorf("%w: image too large: %dx%d", errFormat, w, h)
	}
	return w, h, maxv, nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	rd := &reader{r: bufio.NewReader(r)}
	w, h, _, err := rd.header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: w, Height: h}, nil
}

// Decode reads a plain pixmap. Samples are rescaled to 8 bits when the
// declared max value is not 255.
func Decode(r io.Reader) (image.Image, error) {
	rd := &reader{r: bufio.NewReader(r)}
	w, h, maxv, err := rd.header()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		var px [3]uint8
		for c := range px {
			v, err := rd.int("sample", maxv)
			if err != nil {
				return nil, fmt.Errorf("pixel %d: %w", i, err)
			}
			px[c] = uint8(v * 255 / maxv)
		}
		o := i * 4
		img.Pix[o] = px[0]
		img.Pix[o+1] = px[1]
		img.Pix[o+2] = px[2]
		img.Pix[o+3] = 0xff
	}
	return img, nil
}
