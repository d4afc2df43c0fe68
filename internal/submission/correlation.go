package submission

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newCorrelationID mints the submission-correlation identifier sent to the
// backend on checkout: a timestamp plus a random suffix. The backend uses
// it for idempotency and tracing; nothing local ever parses it.
func newCorrelationID(now time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		panic(fmt.Sprintf("read random suffix: %v", err))
	}
	return fmt.Sprintf("sub-%s-%s", now.UTC().Format("20060102T150405"), hex.EncodeToString(suffix))
}
