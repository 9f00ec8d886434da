package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSecretFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "pw")
	require.NoError(t, os.WriteFile(path, []byte("hunter2\r\n\n"), 0o600))
	got, err := readSecretFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	_, err = readSecretFile(empty)
	assert.ErrorContains(t, err, "empty")

	_, err = readSecretFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestReadPasswordWithoutTerminal(t *testing.T) {
	t.Parallel()

	_, err := readPassword(strings.NewReader("secret\n"), &bytes.Buffer{}, "-")
	assert.ErrorContains(t, err, "no terminal")
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"s\n", true},
		{"SI\n", true},
		{"sí\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"quizás\n", false},
	}

	for _, tt := range tests {
		var prompt bytes.Buffer
		got, err := confirm(strings.NewReader(tt.input), &prompt, "¿Seguro?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "¿Seguro? [s/N]: ", prompt.String())
	}
}

func TestNewLoggerWritesJSONOffTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"key":"value"`)

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}
