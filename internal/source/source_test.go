package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/spiredance/internal/compositor"
	"github.com/ivlev/spiredance/internal/scene"
	"github.com/ivlev/spiredance/internal/waveform"
)

func declarativeScene() *scene.Scene {
	sp := scene.DefaultSpireSpec()
	sp.BaseWiggle = scene.Scaled(1, "sway")
	sp.XWiggle = scene.Scaled(0.5, "osc6")

	bolt := scene.DefaultLightningSpec()
	bolt.When = []scene.Trigger{{Waveform: "osc7", Above: 0}}

	return &scene.Scene{
		FrameCount: 20,
		Width:      60,
		Height:     40,
		Waveforms: map[string]waveform.Def{
			"sway": {Kind: waveform.Sine, Frequency: 3},
		},
		Shapes: []scene.ShapeSpec{scene.Spire(sp), scene.Lightning(bolt)},
	}
}

func TestSceneSourceDefault(t *testing.T) {
	src, err := NewSceneSource("default", scene.Default())
	require.NoError(t, err)

	assert.Equal(t, "default", src.Name())
	assert.Equal(t, scene.DefaultFrames, src.TickCount())
	assert.Equal(t, 1, src.FramesPerTick())
	w, h := src.Dimensions()
	assert.Equal(t, scene.DefaultWidth, w)
	assert.Equal(t, scene.DefaultHeight, h)
	assert.Equal(t, scene.ModeLiteral, src.Mode())

	frames, err := src.RenderTick(0)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	f := frames[0]
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, compositor.LightningColor, f.Background, "кадр 0 со вспышкой")
	require.Len(t, f.Layers, 1)
	assert.Len(t, f.Layers[0].Polygon, 3)

	f1, err := src.Frame(1)
	require.NoError(t, err)
	assert.Equal(t, compositor.BackgroundColor, f1.Background)
}

func TestSceneSourceDeterministic(t *testing.T) {
	a, err := NewSceneSource("a", declarativeScene())
	require.NoError(t, err)
	b, err := NewSceneSource("b", declarativeScene())
	require.NoError(t, err)
	assert.Equal(t, scene.ModeDeclarative, a.Mode())

	for i := 0; i < a.TickCount(); i++ {
		fa, err := a.Frame(i)
		require.NoError(t, err)
		fb, err := b.Frame(i)
		require.NoError(t, err)
		assert.Equal(t, fa.Image.Pix, fb.Image.Pix, "кадр %d", i)
		assert.Equal(t, fa.Layers, fb.Layers, "кадр %d", i)
	}
}

func TestSceneSourceTriggeredLightning(t *testing.T) {
	src, err := NewSceneSource("bolt", declarativeScene())
	require.NoError(t, err)

	var with, without int
	for i := 0; i < src.TickCount(); i++ {
		layers, err := src.Layers(i)
		require.NoError(t, err)
		switch len(layers) {
		case 1:
			without++
		case 2:
			with++
			assert.Equal(t, compositor.LightningColor, layers[1].Fill)
		default:
			t.Fatalf("кадр %d: неожиданное число слоев %d", i, len(layers))
		}
	}
	assert.Positive(t, with)
	assert.Positive(t, without)
}

func TestSceneSourceFixedColor(t *testing.T) {
	sc := scene.Default()
	sc.Shapes[0].Spire.Color = "#81007F"

	src, err := NewSceneSource("fixed", sc)
	require.NoError(t, err)
	for _, i := range []int{0, 13, 57} {
		layers, err := src.Layers(i)
		require.NoError(t, err)
		assert.Equal(t, compositor.SpireColor, layers[0].Fill)
	}
}

func TestSceneSourceRejectsInvalid(t *testing.T) {
	sc := scene.Default()
	sc.FrameCount = 0
	_, err := NewSceneSource("empty", sc)
	var ipe *scene.InvalidParameterError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "frame_count", ipe.Param)
}

func TestSceneSourceOutOfRange(t *testing.T) {
	src, err := NewSceneSource("default", scene.Default())
	require.NoError(t, err)
	_, err = src.RenderTick(-1)
	assert.Error(t, err)
	_, err = src.RenderTick(src.TickCount())
	assert.Error(t, err)
}
