package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "nil", Err(nil).Value.String())
}

func TestSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: ""},
		{name: "short", value: "abc", want: "***"},
		{name: "long", value: "sk-1234567890abcd", want: "sk-1***abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Secret("key", tt.value)
			assert.Equal(t, "key", attr.Key)
			assert.Equal(t, tt.want, attr.Value.String())
		})
	}
}
