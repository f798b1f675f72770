package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendOTPRequiresHost(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	s := NewSender()
	err := s.SendOTP("a@x.com", "123456")
	assert.Error(t, err)
}
