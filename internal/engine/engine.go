package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/spiredance/internal/compositor"
	"github.com/ivlev/spiredance/internal/config"
	"github.com/ivlev/spiredance/internal/source"
	"github.com/ivlev/spiredance/internal/system"
	"github.com/ivlev/spiredance/internal/video"
)

// Project связывает источник кадров, энкодер и параметры запуска.
type Project struct {
	Config  *config.Config
	Source  source.Source
	Encoder video.Encoder
	Log     zerolog.Logger
}

func NewProject(cfg *config.Config, src source.Source, enc video.Encoder, log zerolog.Logger) *Project {
	return &Project{
		Config:  cfg,
		Source:  src,
		Encoder: enc,
		Log:     log,
	}
}

func (p *Project) workers(ticks int) int {
	n := p.Config.Workers
	if n <= 0 {
		n = system.DefaultWorkers()
	}
	if n > ticks {
		n = ticks
	}
	return n
}

// Render считает все тики параллельно и возвращает кадры в порядке
// анимации. Первая ошибка отменяет оставшиеся тики, частичный результат
// не возвращается.
func (p *Project) Render(ctx context.Context) ([]*compositor.Frame, error) {
	ticks := p.Source.TickCount()
	if ticks <= 0 {
		return nil, fmt.Errorf("источник %q не содержит кадров", p.Source.Name())
	}

	results := make([][]*compositor.Frame, ticks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers(ticks))

	for i := 0; i < ticks; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames, err := p.Source.RenderTick(i)
			if err != nil {
				return fmt.Errorf("тик %d: %w", i, err)
			}
			results[i] = frames
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Отмена до запуска первого тика не дает ошибки в группе.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*compositor.Frame, 0, ticks*p.Source.FramesPerTick())
	for _, frames := range results {
		out = append(out, frames...)
	}
	return out, nil
}

// Run рендерит анимацию и записывает ее в Config.OutputPath.
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()
	w, h := p.Source.Dimensions()
	ticks := p.Source.TickCount()

	p.Log.Info().
		Str("source", p.Source.Name()).
		Int("ticks", ticks).
		Int("frames_per_tick", p.Source.FramesPerTick()).
		Int("width", w).
		Int("height", h).
		Int("workers", p.workers(ticks)).
		Msg("рендеринг")

	renderStart := time.Now()
	frames, err := p.Render(ctx)
	if err != nil {
		return fmt.Errorf("ошибка рендеринга: %w", err)
	}
	renderTime := time.Since(renderStart)

	images := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		images[i] = f.Image
	}

	encodeStart := time.Now()
	if err := p.Encoder.Encode(ctx, images, p.Config.OutputPath, p.Config.EncodeParams(w, h)); err != nil {
		return fmt.Errorf("ошибка кодирования: %w", err)
	}
	encodeTime := time.Since(encodeStart)
	totalTime := time.Since(startTime)

	p.Log.Info().
		Int("frames", len(frames)).
		Dur("render", renderTime).
		Dur("encode", encodeTime).
		Str("output", p.Config.OutputPath).
		Msg("готово")

	if p.Config.ShowStats {
		p.report(len(frames), totalTime, renderTime, encodeTime)
	}
	return nil
}

func (p *Project) report(frames int, totalTime, renderTime, encodeTime time.Duration) {
	fps := float64(frames) / totalTime.Seconds()
	host := system.Host()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, host, frames, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), fps,
	)

	if p.Config.StatsLog == "" {
		return
	}
	logEntry := fmt.Sprintf("[%s] Build: %s | Source: %s | Frames: %d | Workers: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Source.Name(),
		frames,
		p.workers(p.Source.TickCount()),
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	if err := appendLine(p.Config.StatsLog, logEntry); err != nil {
		p.Log.Warn().Err(err).Str("path", p.Config.StatsLog).Msg("не удалось записать журнал производительности")
	}
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
