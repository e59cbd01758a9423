package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInviteTerminalStates(t *testing.T) {
	now := time.Now()

	fresh := &Invite{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, fresh.Expired(now))
	assert.False(t, fresh.Used())

	used := &Invite{ExpiresAt: now.Add(time.Hour), UsedAt: &now}
	assert.True(t, used.Used())

	expired := &Invite{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, expired.Expired(now))
}
