package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShareLink_IsExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{
			name:      "no expiry never expires",
			expiresAt: nil,
			want:      false,
		},
		{
			name:      "one second in the past",
			expiresAt: timePtr(now.Add(-time.Second)),
			want:      true,
		},
		{
			name:      "one hour in the future",
			expiresAt: timePtr(now.Add(time.Hour)),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &ShareLink{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, l.IsExpired(now))
		})
	}
}

func TestShareLink_HasPassword(t *testing.T) {
	assert.False(t, (&ShareLink{}).HasPassword())

	empty := ""
	assert.False(t, (&ShareLink{Password: &empty}).HasPassword())

	secret := "secret"
	assert.True(t, (&ShareLink{Password: &secret}).HasPassword())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
