package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, generate(shell, &buf))
			assert.Contains(t, buf.String(), "relconf")
		})
	}

	assert.Error(t, generate("tcsh", &bytes.Buffer{}))
}
