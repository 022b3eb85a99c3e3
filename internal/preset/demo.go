package preset

import (
	"fmt"

	"github.com/ivlev/spiredance/internal/compositor"
	"github.com/ivlev/spiredance/internal/geometry"
	"github.com/ivlev/spiredance/internal/scene"
	"github.com/ivlev/spiredance/internal/waveform"
)

// DemoName is the name of the built-in spires-and-lightning choreography.
const DemoName = "spires_lightning_demo"

// DemoFramesPerTick: after each of the three bolts the demo emits a frame.
const DemoFramesPerTick = 3

// Demo рисует четыре иглы и три молнии, управляемые встроенными осцилляторами.
// Молнии накапливаются внутри тика: второй кадр содержит первую и вторую,
// третий кадр содержит все видимые.
type Demo struct {
	frames int
	comp   *compositor.Compositor
	bg     compositor.Backdrop
}

// NewDemo проверяет размеры холста.
func NewDemo(frames, width, height int) (*Demo, error) {
	if frames <= 0 {
		return nil, &scene.InvalidParameterError{Param: "frame_count", Value: frames, Reason: "must be positive"}
	}
	if width <= 0 {
		return nil, &scene.InvalidParameterError{Param: "width", Value: width, Reason: "must be positive"}
	}
	if height <= 0 {
		return nil, &scene.InvalidParameterError{Param: "height", Value: height, Reason: "must be positive"}
	}
	return &Demo{
		frames: frames,
		comp:   compositor.New(width, height),
		bg:     compositor.DefaultBackdrop(),
	}, nil
}

func (d *Demo) Name() string { return DemoName }

func (d *Demo) TickCount() int { return d.frames }

func (d *Demo) FramesPerTick() int { return DemoFramesPerTick }

func (d *Demo) Dimensions() (int, int) { return d.comp.Width, d.comp.Height }

type demoBolt struct {
	geom    geometry.Lightning
	visible bool
}

func demoSpires(o waveform.Oscillators) ([]geometry.Spire, []int) {
	mk := func(height, width, center, x, y float64) geometry.Spire {
		return geometry.Spire{
			Height:     height,
			BaseWidth:  width,
			BaseCenter: center,
			BaseWiggle: o.N2,
			XWiggle:    x,
			YWiggle:    y,
			Scaling:    geometry.WiggleFixed,
		}
	}
	spires := []geometry.Spire{
		mk(geometry.DefaultSpire().Height, 0.3, 0.5+o.N2/10, o.N6, o.N7*0.75),
		mk(0.2, 0.1, 0.2, o.N6, o.N7*0.6),
		mk(0.3, 0.1, 0.8, o.N7, o.N6*0.9),
		mk(0.3+0.3*(o.N6*o.N7+1)/2, 0.1, (o.N2+1)/2, o.N7, o.N2*0.5),
	}
	return spires, []int{0, 120, 240, 50}
}

func demoBolts(o waveform.Oscillators) []demoBolt {
	first := geometry.DefaultLightning()

	second := geometry.DefaultLightning()
	second.BaseWidth = 0.1
	second.StartHorizontal = 0.1
	second.Zigs = 3
	second.Length = 1.2
	second.Wiggle = o.N6

	third := geometry.DefaultLightning()
	third.BaseWidth = 0.1
	third.StartHorizontal = (o.N6 + 1) / 2
	third.Zigs = 15
	third.Length = 0.4
	third.Wiggle = o.N7

	return []demoBolt{
		{geom: first, visible: o.N7 > 0 && o.N2 > 0},
		{geom: second, visible: o.N7 > 0},
		{geom: third, visible: o.N6 > 0},
	}
}

// RenderTick возвращает три кадра тика index. Фон всех трех определяется
// индексом тика, а Frame.Index равен позиции кадра в итоговой анимации.
func (d *Demo) RenderTick(index int) ([]*compositor.Frame, error) {
	if index < 0 || index >= d.frames {
		return nil, fmt.Errorf("тик %d вне диапазона [0, %d)", index, d.frames)
	}

	o := waveform.At(waveform.Time(index, d.frames))
	hue := o.Hue()
	w, h := d.comp.Width, d.comp.Height
	bg := d.bg.For(index)

	spires, shifts := demoSpires(o)
	layers := make([]compositor.Layer, 0, len(spires)+DemoFramesPerTick)
	for i, s := range spires {
		layers = append(layers, compositor.Layer{
			Polygon: s.Polygon(w, h),
			Fill:    compositor.SpireFill(hue, shifts[i]),
		})
	}

	out := make([]*compositor.Frame, 0, DemoFramesPerTick)
	for k, b := range demoBolts(o) {
		if b.visible {
			poly, err := b.geom.Polygon(w, h)
			if err != nil {
				return nil, fmt.Errorf("молния %d: %w", k, err)
			}
			layers = append(layers, compositor.Layer{Polygon: poly, Fill: compositor.LightningColor})
		}
		out = append(out, d.comp.Compose(index*DemoFramesPerTick+k, bg, layers))
	}
	return out, nil
}
