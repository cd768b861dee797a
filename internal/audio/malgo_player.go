package audio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

const drainPoll = 10 * time.Millisecond

// MalgoPlayer implements the Player interface using malgo
type MalgoPlayer struct {
	config       PlaybackConfig
	device       *malgo.Device
	malgoContext *malgo.AllocatedContext
	buffer       *RingBuffer
	running      bool
	mu           sync.RWMutex
}

// NewMalgoPlayer creates a new malgo-based audio player
func NewMalgoPlayer(config PlaybackConfig) (*MalgoPlayer, error) {
	if config.BufferSize <= 0 {
		return nil, fmt.Errorf("buffer size must be positive")
	}
	return &MalgoPlayer{
		config: config,
		buffer: NewRingBuffer(config.BufferSize),
	}, nil
}

// Start opens the playback device
func (m *MalgoPlayer) Start(ctx context.Context, format Format) error {
	if format.BitDepth != BitDepth {
		return fmt.Errorf("unsupported bit depth %d", format.BitDepth)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return fmt.Errorf("player is already running")
	}

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = format.Channels
	deviceConfig.SampleRate = format.SampleRate
	deviceConfig.PeriodSizeInFrames = m.config.BufferFrames

	if m.config.DeviceName != "" {
		info, err := findPlaybackDevice(malgoCtx, m.config.DeviceName)
		if err != nil {
			_ = malgoCtx.Uninit()
			malgoCtx.Free()
			return err
		}
		deviceConfig.Playback.DeviceID = info.ID.Pointer()
	}

	m.buffer.Reset()
	buffer := m.buffer

	// Data callback - called when the device wants more audio
	var callbacks malgo.DeviceCallbacks
	callbacks.Data = func(pOutputSample, pInputSamples []byte, framecount uint32) {
		n := buffer.Read(pOutputSample)
		// pad underruns with silence
		for i := n; i < len(pOutputSample); i++ {
			pOutputSample[i] = 0
		}
	}

	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		return fmt.Errorf("failed to initialize device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.malgoContext = malgoCtx
	m.device = device
	m.running = true
	return nil
}

// Write queues pcm, waiting for the device to make room
func (m *MalgoPlayer) Write(ctx context.Context, pcm []byte) error {
	for len(pcm) > 0 {
		if !m.IsRunning() {
			return fmt.Errorf("player is not running")
		}
		n := m.buffer.Write(pcm)
		pcm = pcm[n:]
		if len(pcm) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(drainPoll):
		}
	}
	return nil
}

// Drain waits until the buffer is empty
func (m *MalgoPlayer) Drain(ctx context.Context) error {
	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for !m.buffer.IsEmpty() {
		if !m.IsRunning() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Stop stops playback
func (m *MalgoPlayer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false

	var stopErr error
	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			stopErr = fmt.Errorf("failed to stop device: %w", err)
		}
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoContext != nil {
		_ = m.malgoContext.Uninit()
		m.malgoContext.Free()
		m.malgoContext = nil
	}
	m.buffer.Reset()
	return stopErr
}

// IsRunning returns true if playback is currently active
func (m *MalgoPlayer) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

func findPlaybackDevice(ctx *malgo.AllocatedContext, name string) (*malgo.DeviceInfo, error) {
	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	search := strings.ToLower(name)
	for i := range infos {
		if strings.Contains(strings.ToLower(infos[i].Name()), search) {
			return &infos[i], nil
		}
	}
	return nil, fmt.Errorf("no playback device found matching name: %s", name)
}
