//go:build ci

package sound

// SoundManager is silent in CI builds, where no audio device exists.
type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error { return nil }

func (sm *SoundManager) Play(string) {}

func (sm *SoundManager) Close() {}
