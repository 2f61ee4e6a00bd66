package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/multiplane/entity/settings"
)

func TestRender(t *testing.T) {
	t.Parallel()
	a := New("", settings.Load())

	var buf bytes.Buffer
	require.NoError(t, a.Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "Multiplane simulation emitter layout")
	assert.Contains(t, html, "Plane 0 (z = -0.250 um)")
	assert.Contains(t, html, "Plane 1 (z = 0.250 um)")
}

func TestRenderCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := New("", settings.Load()).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestRun(t *testing.T) {
	t.Parallel()
	output := filepath.Join(t.TempDir(), "layout.html")

	require.NoError(t, New(output, settings.Load()).Run(context.Background()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Emitter layout")
}

func TestRunBadOutput(t *testing.T) {
	t.Parallel()
	output := filepath.Join(t.TempDir(), "missing", "layout.html")
	assert.Error(t, New(output, settings.Load()).Run(context.Background()))
}
