package prompter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			ok, err := New(strings.NewReader(tt.input), &out).Confirm("Overwrite state?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Overwrite state? [y/N]: ", out.String())
		})
	}
}
