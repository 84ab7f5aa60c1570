package dblog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevelRoundTrips(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("WARN"))
	assert.Equal(t, Info, ParseLevel("nonsense"))
}

func TestNopDiscardsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop.Log(Fatal, "this must not exit the test process: %d", 1)
	})
}

func TestSetLevelGatesZapLogger(t *testing.T) {
	l := New(Info)
	z, ok := l.(*zapLogger)
	assert.True(t, ok)
	assert.False(t, z.atom.Enabled(Debug.zapLevel()))

	SetLevel(l, Debug)
	assert.True(t, z.atom.Enabled(Debug.zapLevel()))
}

func TestFatalCallsExitHookInsteadOfOSExit(t *testing.T) {
	l := New(Info).(*zapLogger)
	called := false
	l.exit = func() { called = true }

	l.Log(Fatal, "boom %s", "now")
	assert.True(t, called)
}
