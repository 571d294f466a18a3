//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 120 * time.Millisecond
)

var standardFormat = beep.Format{
	SampleRate:  sampleRate,
	NumChannels: 2,
	Precision:   4,
}

// SoundManager plays cues. Init may run in its own goroutine while Play is
// called from the UI.
type SoundManager struct {
	dir string

	mu      sync.RWMutex
	buffers map[string]*beep.Buffer
	enabled atomic.Bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		dir:     "assets/sounds",
		buffers: make(map[string]*beep.Buffer),
	}
}

func (sm *SoundManager) Init() error {
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	if err := sm.loadTones(); err != nil {
		return err
	}
	if err := sm.loadSoundFiles(); err != nil {
		return err
	}
	// 加载完成后才开始播放
	sm.enabled.Store(true)
	return nil
}

func (sm *SoundManager) buffer(name string) (*beep.Buffer, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	b, ok := sm.buffers[name]
	return b, ok
}

func (sm *SoundManager) store(name string, b *beep.Buffer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.buffers[name] = b
}

// loadTones builds the built-in cues from sine tones.
func (sm *SoundManager) loadTones() error {
	for name, freqs := range tones {
		buffer := beep.NewBuffer(standardFormat)
		for _, freq := range freqs {
			tone, err := generators.SineTone(sampleRate, freq)
			if err != nil {
				return fmt.Errorf("tone %s: %w", name, err)
			}
			buffer.Append(beep.Take(sampleRate.N(toneLength), tone))
		}
		sm.store(name, buffer)
	}
	return nil
}

// loadSoundFiles loads all sound files from the assets directory
func (sm *SoundManager) loadSoundFiles() error {
	files, err := os.ReadDir(sm.dir)
	if err != nil {
		// It's okay if directory doesn't exist, just no sounds
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		// Continue loading other files even if one fails
		_ = sm.loadSoundFile(name, strings.TrimSuffix(name, filepath.Ext(name)), ext)
	}
	return nil
}

// loadSoundFile decodes one file into a buffer, replacing any built-in tone.
func (sm *SoundManager) loadSoundFile(name, baseName, ext string) error {
	f, err := os.Open(filepath.Clean(filepath.Join(sm.dir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(standardFormat)
	buffer.Append(resampled)
	sm.store(baseName, buffer)
	return nil
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled.Load() {
		return
	}
	buffer, ok := sm.buffer(name)
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled.Store(false)
}
