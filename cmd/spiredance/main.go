package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivlev/spiredance/internal/config"
	"github.com/ivlev/spiredance/internal/engine"
	"github.com/ivlev/spiredance/internal/preset"
	"github.com/ivlev/spiredance/internal/scene"
	"github.com/ivlev/spiredance/internal/source"
	"github.com/ivlev/spiredance/internal/system"
	"github.com/ivlev/spiredance/internal/video"
)

// Задается при сборке: -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

const scenesDir = "input/scenes"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// Создаем нужные директории, если их нет
	for _, d := range []string{scenesDir, "output"} {
		os.MkdirAll(d, 0755)
	}

	scenePtr := flag.String("scene", "", "Путь к сцене YAML/JSON (по умолчанию: самый свежий файл в input/scenes/)")
	presetPtr := flag.String("preset", "", "Встроенный пресет: "+strings.Join(preset.Names(), ", "))
	outputPtr := flag.String("output", "", "Путь к анимации .gif/.mp4/.webm (если пусто, генерируется автоматически в output/)")
	framesPtr := flag.Int("frames", 0, "Число кадров (тиков) за цикл (0 - из сцены)")
	widthPtr := flag.Int("width", 0, "Ширина (0 - из сцены)")
	heightPtr := flag.Int("height", 0, "Высота (0 - из сцены)")
	durationPtr := flag.Int("duration", 33, "Длительность кадра в мс")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	statsLogPtr := flag.String("stats-log", "benchmark.log", "Файл журнала производительности (пусто - не писать)")
	dumpPtr := flag.String("dump-scene", "", "Сохранить итоговую сцену в YAML и выйти")
	verbosePtr := flag.Bool("v", false, "Подробный журнал")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbosePtr {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := &config.Config{
		ScenePath:     *scenePtr,
		Preset:        *presetPtr,
		Frames:        *framesPtr,
		Width:         *widthPtr,
		Height:        *heightPtr,
		FrameDuration: *durationPtr,
		Workers:       *workersPtr,
		OutputPath:    *outputPtr,
		DumpScene:     *dumpPtr,
		Quality:       *qualityPtr,
		ShowStats:     *statsPtr,
		StatsLog:      *statsLogPtr,
		BuildVersion:  buildVersion,
	}

	if cfg.FrameDuration <= 0 {
		log.Fatal().Int("duration", cfg.FrameDuration).Msg("длительность кадра должна быть положительной")
	}
	if cfg.ScenePath != "" && cfg.Preset != "" {
		log.Fatal().Msg("укажите либо -scene, либо -preset")
	}

	if cfg.ScenePath == "" && cfg.Preset == "" {
		latest, err := system.FindLatestScene(scenesDir)
		if err != nil {
			cfg.Preset = "default"
			log.Debug().Err(err).Msg("сцена не найдена")
			fmt.Printf("[*] Сцен в %s нет, используется пресет: %s\n", scenesDir, cfg.Preset)
		} else {
			cfg.ScenePath = latest
			fmt.Printf("[*] Выбрана сцена: %s\n", cfg.ScenePath)
		}
	}

	canvas := preset.Canvas{Frames: cfg.Frames, Width: cfg.Width, Height: cfg.Height}

	var sc *scene.Scene
	if cfg.ScenePath != "" {
		var err error
		sc, err = scene.Read(cfg.ScenePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ScenePath).Msg("ошибка чтения сцены")
		}
		canvas.Apply(sc)
	}

	if cfg.DumpScene != "" {
		if sc == nil {
			sc = presetScene(cfg.Preset, canvas)
		}
		if err := scene.Write(sc, cfg.DumpScene); err != nil {
			log.Fatal().Err(err).Msg("ошибка записи сцены")
		}
		fmt.Printf("[+++] Сцена сохранена: %s\n", cfg.DumpScene)
		return
	}

	var src source.Source
	var err error
	if sc != nil {
		src, err = source.NewSceneSource(sceneName(cfg.ScenePath), sc)
	} else {
		var p preset.Preset
		if p, err = preset.Get(cfg.Preset); err == nil {
			src, err = p.Source(canvas)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка инициализации источника")
	}

	if cfg.OutputPath == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputPath = filepath.Join("output", fmt.Sprintf("%s_%s.gif", src.Name(), timestamp))
	}

	enc, err := video.ForPath(cfg.OutputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка выбора энкодера")
	}
	if _, ok := enc.(*video.FFmpegEncoder); ok {
		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
		}
		if cfg.Quality == 0 {
			cfg.Quality = config.DefaultQuality(cfg.VideoEncoder)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	project := engine.NewProject(cfg, src, enc, log.Logger)
	if err := project.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("ошибка проекта")
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputPath)
}

func presetScene(name string, c preset.Canvas) *scene.Scene {
	p, err := preset.Get(name)
	if err != nil {
		log.Fatal().Err(err).Msg("ошибка выбора пресета")
	}
	sc, ok := p.Scene(c)
	if !ok {
		log.Fatal().Str("preset", name).Msg("пресет задан кодом и не сохраняется как сцена")
	}
	return sc
}

func sceneName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(name, " ", "_")
}
