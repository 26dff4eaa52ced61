// Package engine invokes the external packaging engine.
package engine

import (
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Engine = (*Executor)(nil)

// Executor implements ports.Engine using os/exec. The engine is a black
// box: it gets an argument list plus the dist path and either produces
// the output tree or fails with no partial-output guarantee.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Build runs the packaging engine, directing its output to distPath.
// Engine stdout and stderr are streamed to the logger.
func (e *Executor) Build(ctx context.Context, args []string, distPath string) error {
	if len(args) == 0 {
		return zerr.Wrap(domain.ErrPackagingFailed, "empty invocation")
	}

	full := append(append([]string{}, args[1:]...), "--distpath", distPath)

	cmd := exec.CommandContext(ctx, args[0], full...) //nolint:gosec // Invocation comes from the user
	cmd.Stdout = &logWriter{logger: e.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: e.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1 // Unknown or signal
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "packaging engine failed"), "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write forwards each line of engine output to the logger. Partial
// lines are forwarded as-is rather than buffered; the engine's own
// formatting survives well enough for a build log.
func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	for _, line := range strings.Split(msg, "\n") {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
