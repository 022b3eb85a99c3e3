package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/spiredance/internal/config"
)

// FFmpegEncoder передает кадры в системный ffmpeg как raw RGBA через stdin.
// Codec переопределяет params.VideoEncoder (например, libvpx-vp9 для webm).
type FFmpegEncoder struct {
	Codec string
}

func (e *FFmpegEncoder) codec(params config.EncodeParams) string {
	if e.Codec != "" {
		return e.Codec
	}
	if params.VideoEncoder != "" {
		return params.VideoEncoder
	}
	return "libx264"
}

func (e *FFmpegEncoder) Encode(ctx context.Context, frames []*image.RGBA, path string, params config.EncodeParams) error {
	if len(frames) == 0 {
		return fmt.Errorf("нет кадров для кодирования")
	}

	args := e.buildFFmpegArgs(path, params)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	for i, img := range frames {
		if err := writeRawRGBA(stdin, img); err != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write raw error (кадр %d): %w", i, err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, out.String())
	}
	return nil
}

// FrameRate переводит длительность кадра в частоту для ffmpeg.
func FrameRate(ms int) string {
	if ms <= 0 {
		ms = 1
	}
	return fmt.Sprintf("%.4f", 1000/float64(ms))
}

func (e *FFmpegEncoder) buildFFmpegArgs(path string, params config.EncodeParams) []string {
	codec := e.codec(params)
	quality := params.Quality
	if quality == 0 {
		quality = config.DefaultQuality(codec)
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", FrameRate(params.FrameDuration),
		"-i", "-",
		// yuv420p требует четных размеров
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2:flags=neighbor",
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}

	// Качество в зависимости от энкодера
	switch codec {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	case "libvpx-vp9":
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-b:v", "0")
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	return append(args, path)
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}
