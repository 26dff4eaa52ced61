package engine_test

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/internal/adapters/engine"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	errs  []error
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(string) {}

func (l *recordingLogger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func TestExecutor_Build_StreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX echo")
	}

	log := &recordingLogger{}
	e := engine.NewExecutor(log)

	// The adapter appends --distpath, which echo happily ignores.
	err := e.Build(context.Background(), []string{"echo", "building"}, t.TempDir())
	require.NoError(t, err)

	log.mu.Lock()
	defer log.mu.Unlock()
	require.NotEmpty(t, log.infos)
	assert.Contains(t, log.infos[0], "building")
}

func TestExecutor_Build_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX false")
	}

	e := engine.NewExecutor(&recordingLogger{})

	err := e.Build(context.Background(), []string{"false"}, t.TempDir())
	require.Error(t, err)
}

func TestExecutor_Build_EmptyInvocation(t *testing.T) {
	e := engine.NewExecutor(&recordingLogger{})

	err := e.Build(context.Background(), nil, t.TempDir())
	require.Error(t, err)
}

func TestExecutor_Build_MissingBinary(t *testing.T) {
	e := engine.NewExecutor(&recordingLogger{})

	err := e.Build(context.Background(), []string{"ship-no-such-engine-binary"}, t.TempDir())
	require.Error(t, err)
}
