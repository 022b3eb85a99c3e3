package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/spiredance/internal/config"
)

func stripes(w, h int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if x%3 == 0 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDelay(t *testing.T) {
	assert.Equal(t, 3, Delay(33))
	assert.Equal(t, 10, Delay(100))
	assert.Equal(t, 1, Delay(5))
	assert.Equal(t, 1, Delay(0))
}

func TestGIFRoundTrip(t *testing.T) {
	green := color.RGBA{0x00, 0xAF, 0x50, 0xFF}
	yellow := color.RGBA{0xFF, 0xFF, 0x00, 0xFF}
	purple := color.RGBA{0x81, 0x00, 0x7F, 0xFF}
	frames := []*image.RGBA{
		stripes(15, 10, green, purple),
		stripes(15, 10, yellow, purple),
		stripes(15, 10, green, yellow),
	}

	var buf bytes.Buffer
	params := config.EncodeParams{Width: 15, Height: 10, FrameDuration: 33}
	require.NoError(t, (&GIFEncoder{}).EncodeTo(context.Background(), &buf, frames, params))

	dec, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, dec.Image, len(frames))
	assert.Equal(t, []int{3, 3, 3}, dec.Delay)
	assert.Equal(t, 0, dec.LoopCount, "бесконечный повтор")

	for i, src := range frames {
		for y := 0; y < 10; y++ {
			for x := 0; x < 15; x++ {
				got := color.RGBAModel.Convert(dec.Image[i].At(x, y))
				require.Equal(t, src.RGBAAt(x, y), got, "кадр %d (%d,%d)", i, x, y)
			}
		}
	}
}

func TestGIFManyColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 0x40, 0xFF})
		}
	}
	p := paletted(img)
	assert.Len(t, p.Palette, maxColors)

	var buf bytes.Buffer
	require.NoError(t, (&GIFEncoder{}).EncodeTo(context.Background(), &buf, []*image.RGBA{img}, config.EncodeParams{FrameDuration: 40}))
	_, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
}

func TestGIFEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	frames := []*image.RGBA{stripes(4, 4, color.RGBA{A: 0xFF}, color.RGBA{R: 0xFF, A: 0xFF})}
	require.NoError(t, (&GIFEncoder{}).Encode(context.Background(), frames, path, config.EncodeParams{FrameDuration: 33}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, dec.Image, 1)
}

func TestGIFRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := (&GIFEncoder{}).EncodeTo(context.Background(), &buf, nil, config.EncodeParams{})
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	enc, err := ForPath("output/a.GIF")
	require.NoError(t, err)
	assert.IsType(t, &GIFEncoder{}, enc)

	enc, err = ForPath("a.mp4")
	require.NoError(t, err)
	assert.IsType(t, &FFmpegEncoder{}, enc)

	enc, err = ForPath("a.webm")
	require.NoError(t, err)
	assert.Equal(t, "libvpx-vp9", enc.(*FFmpegEncoder).Codec)

	_, err = ForPath("a.png")
	assert.Error(t, err)
}

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		name    string
		enc     FFmpegEncoder
		params  config.EncodeParams
		codec   string
		quality []string
	}{
		{"x264 default", FFmpegEncoder{}, config.EncodeParams{Width: 150, Height: 100, FrameDuration: 33}, "libx264", []string{"-crf", "23", "-preset", "medium"}},
		{"videotoolbox", FFmpegEncoder{}, config.EncodeParams{Width: 150, Height: 100, FrameDuration: 33, VideoEncoder: "h264_videotoolbox", Quality: 50}, "h264_videotoolbox", []string{"-b:v", "5000k"}},
		{"nvenc", FFmpegEncoder{}, config.EncodeParams{Width: 150, Height: 100, FrameDuration: 33, VideoEncoder: "h264_nvenc"}, "h264_nvenc", []string{"-cq", "28"}},
		{"vp9", FFmpegEncoder{Codec: "libvpx-vp9"}, config.EncodeParams{Width: 150, Height: 100, FrameDuration: 33, VideoEncoder: "libx264"}, "libvpx-vp9", []string{"-crf", "32", "-b:v", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.enc.buildFFmpegArgs("out.mp4", tt.params)
			t.Logf("ffmpeg %v", args)

			assert.Equal(t, "out.mp4", args[len(args)-1])
			assert.Subset(t, args, []string{"-video_size", "150x100", "-framerate", "30.3030", "-c:v", tt.codec})
			assert.Subset(t, args, tt.quality)
		})
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{1, 2, 3, 4})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, sub))
	assert.Equal(t, 2*2*4, buf.Len())
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes()[:4])
}
