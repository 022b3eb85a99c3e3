package video

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ivlev/spiredance/internal/config"
)

// Encoder записывает готовую последовательность кадров в файл.
type Encoder interface {
	Encode(ctx context.Context, frames []*image.RGBA, path string, params config.EncodeParams) error
}

// Formats, которые умеет выбирать ForPath.
var Formats = []string{".gif", ".mp4", ".mov", ".webm"}

// ForPath выбирает энкодер по расширению выходного файла.
func ForPath(path string) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return &GIFEncoder{}, nil
	case ".mp4", ".mov":
		return &FFmpegEncoder{}, nil
	case ".webm":
		return &FFmpegEncoder{Codec: "libvpx-vp9"}, nil
	default:
		return nil, fmt.Errorf("неизвестный формат %q, поддерживаются: %s", filepath.Ext(path), strings.Join(Formats, ", "))
	}
}
