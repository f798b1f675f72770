package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Now()

	fresh := OTP{CreatedAt: now, ExpiresAt: now.Add(Validity)}
	assert.False(t, fresh.IsExpired())

	almost := OTP{CreatedAt: now.Add(-Validity + time.Second), ExpiresAt: now.Add(time.Second)}
	assert.False(t, almost.IsExpired())

	justPast := OTP{CreatedAt: now.Add(-Validity - time.Second), ExpiresAt: now.Add(-time.Second)}
	assert.True(t, justPast.IsExpired())

	// The expiry instant itself counts as expired.
	atExpiry := OTP{CreatedAt: now.Add(-Validity), ExpiresAt: now}
	assert.True(t, atExpiry.IsExpired())
}
