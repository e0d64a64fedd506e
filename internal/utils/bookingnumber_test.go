package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingNumber(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("Embeds date component", func(t *testing.T) {
		n := NewBookingNumber(now)
		assert.Regexp(t, `^GC-20240610-[0-9A-F]{6}$`, n)
	})

	t.Run("Distinct across calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			n := NewBookingNumber(now)
			assert.False(t, seen[n], "duplicate booking number %s", n)
			seen[n] = true
		}
	})
}
