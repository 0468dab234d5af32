package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates raw audio waves with an optional linear frequency sweep
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding linearly from one frequency to another
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	var sweep float64
	if duration > 0 {
		sweep = (to - from) / duration.Seconds()
	}
	return &oscillator{
		freq:     from,
		sweep:    sweep,
		duration: samples,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades s in over attack and out over the final release of duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; vol <= 0 is silent
// math.Log2(0) is -Inf, so zero is handled by the Silent flag
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	switchDuration = 180 * time.Millisecond
	chimeNote      = 90 * time.Millisecond
	failDuration   = 220 * time.Millisecond
)

// createSwitchSound is a short upward swoosh for layout changes
func createSwitchSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewSweep(220, 660, switchDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, switchDuration, 20*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(shaped, vol*0.5)
}

// createLoadedSound is a rising two-note chime for a successful load
func createLoadedSound(rate beep.SampleRate, vol float64) beep.Streamer {
	var notes []beep.Streamer
	for _, freq := range []float64{659.25, 987.77} {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			// frequency above Nyquist for this rate; fall back to the oscillator
			tone = NewOscillator(freq, chimeNote, WaveSine, rate)
		}
		note := beep.Take(rate.N(chimeNote), tone)
		notes = append(notes, NewEnvelope(note, chimeNote, 5*time.Millisecond, 60*time.Millisecond, rate))
	}
	return newVolume(beep.Seq(notes...), vol*0.6)
}

// createFailedSound is a low saw buzz over a square sub-octave for a failed load
func createFailedSound(rate beep.SampleRate, vol float64) beep.Streamer {
	buzz := NewSweep(140, 90, failDuration, WaveSaw, rate)
	sub := newVolume(NewSweep(70, 45, failDuration, WaveSquare, rate), 0.5)
	shaped := NewEnvelope(beep.Mix(buzz, sub), failDuration, 10*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, vol*0.3)
}
