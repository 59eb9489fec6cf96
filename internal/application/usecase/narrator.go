package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

const (
	narratorStep     = 10
	narratorInterval = 250 * time.Millisecond

	barTrackLength = 11
	barMaxWave     = 3
)

var waveSymbols = [barMaxWave]string{"💫", "🔥", "💥"}

// Narrator renders the time-paced "reactor" status sequence on a job's
// status message. The pacing is a presentation device: real transcode
// progress is not observable, so the sequence is deterministic.
type Narrator struct {
	transport Transport
	interval  time.Duration
	phrases   [5]string
}

// NewNarrator creates a narrator using the catalog's progress phrases.
func NewNarrator(transport Transport, msgs *domain.Messages) *Narrator {
	return &Narrator{
		transport: transport,
		interval:  narratorInterval,
		phrases:   msgs.ProgressPhrases,
	}
}

// Run plays the full sequence on the status message. Identical
// consecutive frames are not re-sent, and edit failures are swallowed:
// the display is cosmetic, not load-bearing.
func (n *Narrator) Run(ctx context.Context, chatID int64, messageID int) {
	lastText := ""
	for _, text := range NarratorFrames(n.phrases) {
		if text != lastText {
			_ = n.transport.EditMessageText(chatID, messageID, text)
			lastText = text
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(n.interval):
		}
	}
}

// NarratorFrames returns the eleven rendered steps (0%,10%,…,100%).
func NarratorFrames(phrases [5]string) []string {
	frames := make([]string, 0, 101/narratorStep+1)
	for progress := 0; progress <= 100; progress += narratorStep {
		phraseIndex := progress / 25
		if phraseIndex > len(phrases)-1 {
			phraseIndex = len(phrases) - 1
		}
		frames = append(frames, fmt.Sprintf("%s\n     %d%%\n%s",
			reactorBar(progress), progress, phrases[phraseIndex]))
	}
	return frames
}

// reactorBar renders an 11-cell track with a center marker and wave
// symbols radiating outward as progress grows.
func reactorBar(progress int) string {
	cells := make([]string, barTrackLength)
	for i := range cells {
		cells[i] = "░"
	}
	center := barTrackLength / 2
	cells[center] = "💠"

	waveSteps := progress/33 + 1
	if waveSteps > barMaxWave {
		waveSteps = barMaxWave
	}
	for i := 1; i <= waveSteps; i++ {
		if left := center - i; left >= 0 {
			cells[left] = waveSymbols[i-1]
		}
		if right := center + i; right < barTrackLength {
			cells[right] = waveSymbols[i-1]
		}
	}
	return "[" + strings.Join(cells, "") + "]"
}
