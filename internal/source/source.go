package source

import (
	"fmt"

	"github.com/ivlev/spiredance/internal/compositor"
	"github.com/ivlev/spiredance/internal/scene"
	"github.com/ivlev/spiredance/internal/waveform"
)

// Source отдает кадры анимации по тикам. Тик является независимой единицей работы:
// его кадры зависят только от индекса, поэтому тики можно считать параллельно.
type Source interface {
	Name() string
	TickCount() int
	FramesPerTick() int
	Dimensions() (width, height int)
	RenderTick(index int) ([]*compositor.Frame, error)
}

// SceneSource генерирует по одному кадру на тик из описания сцены.
type SceneSource struct {
	name string
	plan *scene.Plan
	comp *compositor.Compositor
}

// NewSceneSource проверяет сцену до генерации первого кадра.
func NewSceneSource(name string, sc *scene.Scene) (*SceneSource, error) {
	plan, err := sc.Compile()
	if err != nil {
		return nil, err
	}
	return &SceneSource{
		name: name,
		plan: plan,
		comp: compositor.New(plan.Width, plan.Height),
	}, nil
}

func (s *SceneSource) Name() string { return s.name }

func (s *SceneSource) TickCount() int { return s.plan.FrameCount }

func (s *SceneSource) FramesPerTick() int { return 1 }

func (s *SceneSource) Dimensions() (int, int) { return s.plan.Width, s.plan.Height }

// Mode сообщает, управляются ли параметры сцены волнами.
func (s *SceneSource) Mode() scene.Mode { return s.plan.Mode }

func (s *SceneSource) RenderTick(index int) ([]*compositor.Frame, error) {
	f, err := s.Frame(index)
	if err != nil {
		return nil, err
	}
	return []*compositor.Frame{f}, nil
}

// Frame рендерит кадр index.
func (s *SceneSource) Frame(index int) (*compositor.Frame, error) {
	layers, err := s.Layers(index)
	if err != nil {
		return nil, err
	}
	return s.comp.Compose(index, s.plan.Backdrop.For(index), layers), nil
}

// Layers строит слои кадра index в порядке фигур сцены.
func (s *SceneSource) Layers(index int) ([]compositor.Layer, error) {
	if index < 0 || index >= s.plan.FrameCount {
		return nil, fmt.Errorf("кадр %d вне диапазона [0, %d)", index, s.plan.FrameCount)
	}

	r := waveform.NewResolver(s.plan.Table, waveform.Time(index, s.plan.FrameCount))
	hue := r.Osc.Hue()
	w, h := s.plan.Width, s.plan.Height

	layers := make([]compositor.Layer, 0, len(s.plan.Shapes))
	for i, sh := range s.plan.Shapes {
		switch {
		case sh.Spire != nil:
			fill := compositor.SpireFill(hue, sh.Spire.HueShift)
			if sh.Fill != nil {
				fill = *sh.Fill
			}
			poly := sh.Spire.Geometry(r, s.plan.Scaling).Polygon(w, h)
			layers = append(layers, compositor.Layer{Polygon: poly, Fill: fill})

		case sh.Lightning != nil:
			if !sh.Lightning.Visible(r) {
				continue
			}
			poly, err := sh.Lightning.Geometry(r).Polygon(w, h)
			if err != nil {
				return nil, fmt.Errorf("фигура %d: %w", i, err)
			}
			layers = append(layers, compositor.Layer{Polygon: poly, Fill: *sh.Fill})
		}
	}
	return layers, nil
}
