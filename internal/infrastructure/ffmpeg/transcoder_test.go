package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	duration, err := parseDuration([]byte("53.481000\n"))
	assert.NoError(t, err)
	assert.InDelta(t, 53.481, duration, 0.001)
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, output := range []string{"", "N/A", "duration=12", "abc\n"} {
		_, err := parseDuration([]byte(output))
		assert.Error(t, err, "output %q must not parse", output)
	}
}
