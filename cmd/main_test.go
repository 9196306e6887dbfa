package main

import (
	"testing"
	"time"

	"github.com/richinsley/goshaderlive/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (options.Options, error) {
	t.Helper()
	var got options.Options
	app := newApp(func(o options.Options) error {
		got = o
		return nil
	})
	err := app.Run(append([]string{"goshaderlive"}, args...))
	return got, err
}

func TestParseDefaults(t *testing.T) {
	opts, err := parse(t, "toy.frag")
	require.NoError(t, err)
	assert.Equal(t, "toy.frag", opts.FragmentPath)
	assert.Equal(t, 1280, opts.Width)
	assert.Equal(t, 720, opts.Height)
	assert.True(t, opts.Watch)
	assert.Equal(t, 100*time.Millisecond, opts.Debounce)
	assert.False(t, opts.Recording())
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "in_vert", opts.Attribute)
}

func TestParseFlags(t *testing.T) {
	opts, err := parse(t,
		"--width", "640", "--height", "360",
		"--no-watch", "--raw", "--debounce", "250ms", "--attribute", "position",
		"-o", "out.mp4", "--fps", "30", "--duration", "2",
		"toy.frag")
	require.NoError(t, err)
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 360, opts.Height)
	assert.False(t, opts.Watch)
	assert.True(t, opts.Raw)
	assert.Equal(t, "position", opts.Attribute)
	assert.Equal(t, 250*time.Millisecond, opts.Debounce)
	assert.Equal(t, "out.mp4", opts.Output)
	assert.Equal(t, 60, opts.Frames())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GOSHADERLIVE_WIDTH", "800")
	t.Setenv("GOSHADERLIVE_LOG_LEVEL", "debug")
	opts, err := parse(t, "toy.frag")
	require.NoError(t, err)
	assert.Equal(t, 800, opts.Width)
	assert.Equal(t, "debug", opts.LogLevel)
}

func TestMissingShaderArgument(t *testing.T) {
	_, err := parse(t)
	var missing *options.MissingArgumentError
	assert.ErrorAs(t, err, &missing)
}

func TestTooManyArguments(t *testing.T) {
	_, err := parse(t, "a.frag", "b.frag")
	assert.Error(t, err)
}
