package render

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ripplegen/field"
	"ripplegen/parallel"
	"ripplegen/ppm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func defaults() *CLICmd {
	return &CLICmd{
		Width:       512,
		Height:      512,
		Supersample: 1,
		XMin:        -10,
		XMax:        10,
		YMin:        -10,
		YMax:        10,
		K:           field.ReferenceK,
		Radius:      5,
		Out:         "-",
		Format:      "auto",
	}
}

func TestValidate(t *testing.T) {
	c := defaults()
	require.NoError(t, c.Validate(nil))
	assert.Equal(t, "ppm", c.Format)
	assert.Equal(t, field.Reference(), c.Sampler)

	c = defaults()
	c.Supersample = 3
	c.Out = "ripple.PNG"
	require.NoError(t, c.Validate(nil))
	assert.Equal(t, "png", c.Format)
	assert.Equal(t, 1536, c.Sampler.Width)

	bad := map[string]func(c *CLICmd){
		"width":       func(c *CLICmd) { c.Width = 0 },
		"height":      func(c *CLICmd) { c.Height = -4 },
		"supersample": func(c *CLICmd) { c.Supersample = 0 },
		"radius":      func(c *CLICmd) { c.Radius = -1 },
		"bounds":      func(c *CLICmd) { c.XMax = -20 },
		"k":           func(c *CLICmd) { c.K = math.NaN() },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			c := defaults()
			mutate(c)
			assert.Error(t, c.Validate(nil))
		})
	}
}

func TestFormatFor(t *testing.T) {
	for name, want := range map[string]string{
		"-":          "ppm",
		"out.ppm":    "ppm",
		"out":        "ppm",
		"a/b.jpg":    "jpeg",
		"a/b.JPEG":   "jpeg",
		"x.gif":      "gif",
		"x.bmp":      "bmp",
		"x.tif":      "tiff",
		"x.tiff":     "tiff",
		"ripple.png": "png",
	} {
		assert.Equal(t, want, formatFor(name), name)
	}
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	pool := parallel.Start(2)
	defer pool.Wait(true)

	for _, format := range []string{"ppm", "png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			c := defaults()
			c.Width, c.Height = 12, 8
			c.Out = filepath.Join(dir, "ripple."+format)
			require.NoError(t, c.Validate(nil))
			require.NoError(t, c.Run(pool))

			info, err := os.Stat(c.Out)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

			f, err := os.Open(c.Out)
			require.NoError(t, err)
			defer f.Close()
			img, decoded, err := image.Decode(f)
			require.NoError(t, err)
			assert.Equal(t, format, decoded)
			assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())

			s := c.Sampler
			for _, p := range []image.Point{{0, 0}, {11, 0}, {0, 7}, {5, 3}} {
				want := color.RGBA{
					R: field.Quantize(s.Value(p.X, p.Y, field.Red)),
					G: field.Quantize(s.Value(p.X, p.Y, field.Green)),
					B: field.Quantize(s.Value(p.X, p.Y, field.Blue)),
					A: 0xff,
				}
				assert.Equal(t, want, color.RGBAModel.Convert(img.At(p.X, p.Y)), "%v", p)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "temporary files left behind")
}

func TestRunWritesStdout(t *testing.T) {
	var out, progress bytes.Buffer
	stdout, stderr = &out, &progress
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	pool := parallel.Start(2)
	defer pool.Wait(true)

	c := defaults()
	c.Width, c.Height = 6, 4
	c.Progress = true
	require.NoError(t, c.Validate(nil))
	require.NoError(t, c.Run(pool))

	assert.NotContains(t, out.String(), "Scanlines")
	assert.Contains(t, progress.String(), "Scanlines completed: 3")

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3+6*4)
	assert.Equal(t, []string{"P3", "6 4", "255"}, lines[:3])

	img, err := ppm.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	r := field.Quantize(c.Sampler.Value(5, 3, field.Red))
	assert.Equal(t, r, color.RGBAModel.Convert(img.At(5, 3)).(color.RGBA).R)
}

func TestSaveFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "ripple.xyz")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	assert.Error(t, save(img, "xyz", dest, nil))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEncodeMatchesPPM(t *testing.T) {
	s := field.Reference()
	s.Width, s.Height = 5, 5
	pool := parallel.Start(1)
	f, err := s.Sample(pool.Do, pool.Wait)
	require.NoError(t, err)

	var want, got bytes.Buffer
	require.NoError(t, ppm.Encode(&want, f))
	require.NoError(t, encode(&got, f, "ppm", nil))
	assert.Equal(t, want.String(), got.String())
}

func TestDownscaleConstant(t *testing.T) {
	s := &field.Sampler{
		Width:  8,
		Height: 6,
		Bounds: field.Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1},
	}
	pool := parallel.Start(1)
	f, err := s.Sample(pool.Do, pool.Wait)
	require.NoError(t, err)

	img := downscale(f, 4, 3)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	for y := range 3 {
		for x := range 4 {
			assert.Equal(t, color.RGBA{R: 181, G: 181, B: 181, A: 255}, img.At(x, y))
		}
	}
}
