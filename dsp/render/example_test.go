package render_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-filterunit/dsp/event"
	"github.com/cwbudde/algo-filterunit/dsp/param"
	"github.com/cwbudde/algo-filterunit/dsp/render"
)

func ExampleAdapter_ProcessInterleaved() {
	a := render.New(render.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := a.ApplyPreset("Prominent"); err != nil {
		fmt.Println(err)
		return
	}

	if err := a.AllocateRenderResources(2, 48000, 256); err != nil {
		fmt.Println(err)
		return
	}
	defer a.DeallocateRenderResources()

	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 48000},
		Data:   make([]float64, 2*256),
	}

	hostEvents := []event.Event{event.Parameter(param.Resonance, 0, 100)}
	if err := a.ProcessInterleaved(buf, hostEvents); err != nil {
		fmt.Println(err)
		return
	}

	d := a.Diagnostics()
	fmt.Printf("cutoff target: %.0f Hz\n", a.Parameter(param.Cutoff))
	fmt.Printf("cycles=%d frames=%d dropped=%d\n", d.Cycles, d.Frames, d.DroppedEvents)
	// Output:
	// cutoff target: 2500 Hz
	// cycles=1 frames=256 dropped=0
}
