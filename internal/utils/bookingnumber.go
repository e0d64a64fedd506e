package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingNumber produces a human-readable booking number such as
// GC-20240610-7F3A2B: a date component for operators, a random suffix for
// uniqueness. Collisions are effectively impossible but the column carries a
// unique constraint and the caller retries on conflict.
func NewBookingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("GC-%s-%s", now.UTC().Format("20060102"), suffix)
}
