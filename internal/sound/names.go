// Package sound plays short cues in the terminal client.
package sound

// Cue names. A file assets/sounds/<name>.mp3 or .wav overrides the built-in tone.
const (
	Turn    = "turn"
	Play    = "play"
	Penalty = "penalty"
	Win     = "win"
)

// tones are the fallback frequencies in Hz for each cue.
var tones = map[string][]float64{
	Turn:    {880},
	Play:    {660},
	Penalty: {330, 220},
	Win:     {523.25, 659.25, 783.99},
}
