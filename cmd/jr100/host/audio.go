package host

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/jr100emu/jr100/jr100"
)

const sampleRate = 44100

// AudioSink streams the tone generator's square wave to the host's audio
// device. Adapted from IntuitionAmiga-IntuitionEngine/audio_backend_oto.go's
// OtoPlayer: an oto.Context + oto.Player reading from an io.Reader that
// synthesizes samples on demand.
type AudioSink struct {
	ctx    *oto.Context
	player *oto.Player
	level  atomic.Bool
}

// NewAudioSink opens the default audio device. If no device is available
// it returns a *jr100.AudioUnavailable error, which callers should log and
// otherwise ignore — the machine runs fine without sound.
func NewAudioSink() (*AudioSink, error) {
	sink := &AudioSink{}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, &jr100.AudioUnavailable{Reason: err.Error()}
	}
	<-ready

	sink.ctx = ctx
	sink.player = ctx.NewPlayer(sink)
	sink.player.Play()
	return sink, nil
}

// Read implements io.Reader, synthesizing a flat square wave at whatever
// level was last set by Drive.
func (s *AudioSink) Read(p []byte) (int, error) {
	high := s.level.Load()
	sample := float32(0)
	if high {
		sample = 0.25
	} else {
		sample = -0.25
	}
	for i := 0; i+4 <= len(p); i += 4 {
		putFloat32LE(p[i:i+4], sample)
	}
	return len(p), nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

// Drive samples the tone generator's level once per call. The host's main
// loop calls it once per emulated frame, after Machine.RunFor; each level
// change is logged at debug level, which JR100_DEBUG=audio makes visible.
func (s *AudioSink) Drive(tone *jr100.ToneGenerator, logger *slog.Logger) {
	level := tone.Level()
	if s.level.Swap(level) != level {
		logger.Debug("tone level changed", "level", level)
	}
}
