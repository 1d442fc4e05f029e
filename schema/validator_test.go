package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    interface{}
		wantErr bool
	}{
		{"empty object", map[string]interface{}{}, false},
		{"valid fields", map[string]interface{}{
			"interval":  "2s",
			"batteries": []int{0},
			"backlight": map[string]interface{}{"source": "sysfs"},
		}, false},
		{"extension keys allowed", map[string]interface{}{"logging": map[string]interface{}{"level": "debug"}}, false},
		{"negative battery", map[string]interface{}{"batteries": []int{-1}}, true},
		{"unknown backlight source", map[string]interface{}{"backlight": map[string]interface{}{"source": "ddc"}}, true},
		{"unknown mixer key", map[string]interface{}{"mixer": map[string]interface{}{"card": 1}}, true},
		{"interval wrong type", map[string]interface{}{"interval": 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
