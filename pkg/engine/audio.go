package engine

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"glitchpad/internal/logger"
	"glitchpad/pkg/config"
	"glitchpad/pkg/sfx"
)

const (
	framesPerBuffer = 1024
	numChannels     = 2
)

// AudioEngine plays sound cues through the default PortAudio output
type AudioEngine struct {
	config    config.AudioConfig
	logger    *logger.Logger
	stream    *portaudio.Stream
	mixer     *sfx.Mixer
	isRunning bool
}

// NewAudioEngine opens and starts the default output stream
func NewAudioEngine(cfg config.AudioConfig, log *logger.Logger) (*AudioEngine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	engine := &AudioEngine{
		config: cfg,
		logger: log.Named("audio"),
		mixer:  sfx.NewMixer(cfg.Volume),
	}

	if err := engine.initAudio(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}

	return engine, nil
}

// initAudio initializes the audio output
func (ae *AudioEngine) initAudio() error {
	var err error

	ae.stream, err = portaudio.OpenDefaultStream(0, numChannels, sfx.SampleRate, framesPerBuffer, ae.mixer.Mix)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := ae.stream.Start(); err != nil {
		ae.stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	ae.isRunning = true
	ae.logger.Infof("audio output started at %d Hz", sfx.SampleRate)
	return nil
}

// Play queues a cue at the given volume, centered
func (ae *AudioEngine) Play(samples []float32, volume float32) {
	if ae == nil || !ae.isRunning {
		return
	}
	ae.mixer.Play(samples, volume, 0)
}

// Shutdown stops the stream and releases PortAudio
func (ae *AudioEngine) Shutdown() {
	if ae == nil || !ae.isRunning {
		return
	}
	ae.isRunning = false
	if err := ae.stream.Stop(); err != nil {
		ae.logger.Warnf("stopping audio stream: %v", err)
	}
	if err := ae.stream.Close(); err != nil {
		ae.logger.Warnf("closing audio stream: %v", err)
	}
	portaudio.Terminate()
}
