package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTopicName(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		wantErr bool
	}{
		{"ordinary topic", "a/b/c", false},
		{"empty topic", "", true},
		{"plus wildcard", "a/+/c", true},
		{"hash wildcard", "a/#", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopicName(tt.topic)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTopicFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantErr bool
	}{
		{"ordinary filter", "a/b/c", false},
		{"empty filter", "", true},
		{"single-level wildcard", "a/+/c", false},
		{"multi-level wildcard at end", "a/b/#", false},
		{"multi-level wildcard not at end", "a/#/c", true},
		{"partial plus in level", "a/b+/c", true},
		{"partial hash in level", "a/b#", true},
		{"bare multi-level wildcard", "#", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopicFilter(tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePacketID(t *testing.T) {
	assert.NoError(t, ValidatePacketID(1))
	assert.ErrorIs(t, ValidatePacketID(0), ErrInvalidPacketID)
}
