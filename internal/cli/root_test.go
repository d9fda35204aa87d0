package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/domain/models"
)

func TestReadMessageText(t *testing.T) {
	t.Run("from arguments", func(t *testing.T) {
		text, err := readMessageText([]string{"hello", "there"}, "")
		require.NoError(t, err)
		assert.Equal(t, "hello there", text)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "msg.txt")
		require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o644))

		text, err := readMessageText(nil, path)
		require.NoError(t, err)
		assert.Equal(t, "from a file", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readMessageText(nil, filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := readMessageText([]string{"   "}, "")
		assert.Error(t, err)
	})
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"analyze", "advice", "contacts", "report"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"analyze", "--json", "URGENT: verify your password now"})
		require.NoError(t, rootCmd.Execute())
	})

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, models.VerdictCaution, result.Verdict)
	assert.Len(t, result.Flags, 2)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}
