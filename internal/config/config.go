package config

// Config собирает параметры запуска из флагов командной строки.
type Config struct {
	ScenePath     string
	Preset        string
	Frames        int // 0: из сцены или пресета
	Width         int
	Height        int
	FrameDuration int // мс на кадр
	Workers       int
	OutputPath    string
	DumpScene     string
	VideoEncoder  string
	Quality       int
	ShowStats     bool
	StatsLog      string
	BuildVersion  string
}

// EncodeParams передаются энкодеру вместе с кадрами.
type EncodeParams struct {
	Width, Height int
	FrameDuration int // мс
	LoopCount     int // 0: бесконечно
	VideoEncoder  string
	Quality       int
}

// EncodeParams собирает параметры кодирования для холста width x height.
func (c *Config) EncodeParams(width, height int) EncodeParams {
	return EncodeParams{
		Width:         width,
		Height:        height,
		FrameDuration: c.FrameDuration,
		VideoEncoder:  c.VideoEncoder,
		Quality:       c.Quality,
	}
}

// DefaultQuality подбирает качество под энкодер, если оно не задано.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // битрейт Q*100 кбит/с
	case "h264_nvenc":
		return 28
	case "libvpx-vp9":
		return 32
	default:
		return 23 // CRF для x264
	}
}
