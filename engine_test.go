package vecio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSelectsVariant(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{EngineSync, Config{}},
		{EnginePsync, Config{}},
		{EngineVsync, Config{Depth: 16}},
	} {
		eng, err := New(tc.name, tc.cfg)
		require.NoError(t, err, tc.name)
		require.NotNil(t, eng, tc.name)
	}
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("aio", Config{})
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestNewVsyncRequiresDepth(t *testing.T) {
	_, err := New(EngineVsync, Config{})
	require.ErrorIs(t, err, ErrDepth)
	_, err = New(EngineVsync, Config{Depth: -1})
	require.ErrorIs(t, err, ErrDepth)
}
