package video

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"sort"

	"github.com/ivlev/spiredance/internal/config"
)

// maxColors: предел палитры GIF.
const maxColors = 256

// GIFEncoder пишет зацикленный GIF. Палитра строится по каждому кадру
// отдельно: кадры с не более чем 256 цветами передаются без потерь.
type GIFEncoder struct{}

func (e *GIFEncoder) Encode(ctx context.Context, frames []*image.RGBA, path string, params config.EncodeParams) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.EncodeTo(ctx, f, frames, params); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// EncodeTo пишет GIF в w.
func (e *GIFEncoder) EncodeTo(ctx context.Context, w io.Writer, frames []*image.RGBA, params config.EncodeParams) error {
	if len(frames) == 0 {
		return fmt.Errorf("нет кадров для кодирования")
	}

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: params.LoopCount,
	}
	delay := Delay(params.FrameDuration)
	for i, img := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if img == nil {
			return fmt.Errorf("кадр %d пуст", i)
		}
		anim.Image = append(anim.Image, paletted(img))
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("gif encode error: %w", err)
	}
	return nil
}

// Delay переводит миллисекунды в сотые доли секунды GIF (не меньше 1).
func Delay(ms int) int {
	d := ms / 10
	if d < 1 {
		return 1
	}
	return d
}

// paletted строит палитру из самых частых цветов кадра.
func paletted(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	counts := make(map[color.RGBA]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[img.RGBAAt(x, y)]++
		}
	}

	colors := make([]color.RGBA, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return rgbaKey(a) < rgbaKey(b)
	})
	if len(colors) > maxColors {
		colors = colors[:maxColors]
	}

	pal := make(color.Palette, len(colors))
	index := make(map[color.RGBA]uint8, len(colors))
	for i, c := range colors {
		pal[i] = c
		index[c] = uint8(i)
	}

	dst := image.NewPaletted(b, pal)
	if len(counts) > maxColors {
		// Лишние цвета приводятся к ближайшим из палитры.
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetColorIndex(x, y, index[img.RGBAAt(x, y)])
		}
	}
	return dst
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
