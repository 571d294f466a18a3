package client

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRandomNickname(t *testing.T) {
	t.Parallel()
	for range 50 {
		name := RandomNickname()
		assert.NotEmpty(t, name)
		assert.LessOrEqual(t, utf8.RuneCountInString(name), 20)
		assert.Equal(t, strings.TrimSpace(name), name)
	}
}
