package sfx

import "sync"

// voice is one playing cue.
type voice struct {
	samples []float32
	pos     int
	volume  float32
	pan     float32
}

// Mixer sums playing cues into interleaved stereo buffers. Play is called
// from the render loop while Mix runs on the audio thread.
type Mixer struct {
	mu     sync.Mutex
	voices []*voice
	volume float32
}

// NewMixer creates a mixer with a master volume in [0, 1].
func NewMixer(volume float64) *Mixer {
	return &Mixer{volume: float32(volume)}
}

// Play starts samples at volume. pan runs from -1 (left) to 1 (right).
func (m *Mixer) Play(samples []float32, volume, pan float32) {
	if len(samples) == 0 {
		return
	}
	m.mu.Lock()
	m.voices = append(m.voices, &voice{samples: samples, volume: volume, pan: pan})
	m.mu.Unlock()
}

// Playing returns the number of cues still sounding.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// SetVolume changes the master volume.
func (m *Mixer) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = float32(volume)
	m.mu.Unlock()
}

// Mix overwrites out (interleaved stereo) with the sum of all voices and
// drops voices that ran out.
func (m *Mixer) Mix(out []float32) {
	clear(out)

	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.voices[:0]
	for _, v := range m.voices {
		left := v.volume * m.volume * (1 - v.pan)
		right := v.volume * m.volume * (1 + v.pan)
		for i := 0; i+1 < len(out) && v.pos < len(v.samples); i += 2 {
			s := v.samples[v.pos]
			out[i] += s * left
			out[i+1] += s * right
			v.pos++
		}
		if v.pos < len(v.samples) {
			live = append(live, v)
		}
	}
	clear(m.voices[len(live):])
	m.voices = live

	for i := range out {
		out[i] = SoftClip(out[i])
	}
}
