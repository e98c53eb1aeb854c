package slugify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Halloween Tee", "halloween-tee"},
		{"punctuation collapsed", "Just A Little Boost!", "just-a-little-boost"},
		{"leading and trailing symbols", "--Spooky Season--", "spooky-season"},
		{"empty input falls back", "", "product"},
		{"symbols only fall back", "!!! ???", "product"},
		{"already a slug", "plain-slug", "plain-slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	first := Make("Glitter Skull Hoodie (Limited)")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Make("Glitter Skull Hoodie (Limited)"))
	}
}

func TestMakeLengthCap(t *testing.T) {
	long := strings.Repeat("very long product name ", 20)
	got := Make(long)
	assert.LessOrEqual(t, len(got), 80)
	assert.False(t, strings.HasSuffix(got, "-"), "cap must not leave a trailing separator")
}
