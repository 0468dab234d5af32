// Package audio plays short synthesized cues for scene events.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a sound event
type Cue int

const (
	CueSwitch Cue = iota
	CueLoaded
	CueFailed
)

func (c Cue) String() string {
	switch c {
	case CueSwitch:
		return "switch"
	case CueLoaded:
		return "loaded"
	case CueFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Player plays cues without blocking the caller
type Player interface {
	Play(c Cue)
	Close()
}

// Streamer builds a fresh streamer for c at the given rate and linear volume
// Returns nil for unknown cues
func Streamer(c Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case CueSwitch:
		return createSwitchSound(rate, vol)
	case CueLoaded:
		return createLoadedSound(rate, vol)
	case CueFailed:
		return createFailedSound(rate, vol)
	default:
		return nil
	}
}

// Silent discards every cue
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}

// device is the audio output a SpeakerPlayer mixes onto
type device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

// systemSpeaker is the process-wide beep speaker
type systemSpeaker struct{}

func (systemSpeaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (systemSpeaker) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (systemSpeaker) Lock()                   { speaker.Lock() }
func (systemSpeaker) Unlock()                 { speaker.Unlock() }
func (systemSpeaker) Clear()                  { speaker.Clear() }
func (systemSpeaker) Close()                  { speaker.Close() }

// SpeakerPlayer mixes cues onto an audio device
type SpeakerPlayer struct {
	mu     sync.Mutex
	dev    device
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeakerPlayer initializes the system speaker
func NewSpeakerPlayer(volume float64) (*SpeakerPlayer, error) {
	return newSpeakerPlayer(systemSpeaker{}, volume)
}

func newSpeakerPlayer(dev device, volume float64) (*SpeakerPlayer, error) {
	if err := dev.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	p := &SpeakerPlayer{dev: dev, mixer: &beep.Mixer{}, volume: volume}
	dev.Play(p.mixer)
	return p, nil
}

// OpenPlayer returns a speaker player, or Silent when the device cannot be opened
func OpenPlayer(volume float64) Player {
	return openPlayer(systemSpeaker{}, volume)
}

func openPlayer(dev device, volume float64) Player {
	p, err := newSpeakerPlayer(dev, volume)
	if err != nil {
		slog.Warn("Audio unavailable, continuing muted", "error", err)
		return Silent{}
	}
	return p
}

// Play queues c on the mixer
func (p *SpeakerPlayer) Play(c Cue) {
	s := Streamer(c, sampleRate, p.volume)
	if s == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.dev.Lock()
	p.mixer.Add(s)
	p.dev.Unlock()
	slog.Debug("Cue played", "cue", c)
}

// Close silences the mixer and releases the device
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.dev.Clear()
	p.dev.Close()
}

// Recorder keeps every cue in order; used by tests and headless runs
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *Recorder) Close() {}

// Cues returns a copy of the recorded cues
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}
