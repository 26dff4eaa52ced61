// Package pyenv answers whether a module exists in the target Python
// environment.
package pyenv

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

// probeTimeout bounds the one-off interpreter probe.
const probeTimeout = 10 * time.Second

// Resolver implements ports.ModuleResolver by consulting the
// interpreter's search path once and then answering from the
// filesystem. The module itself is never imported; loading third-party
// code to prove it loadable is exactly what this adapter exists to
// avoid.
//
// When the interpreter cannot be probed at all the resolver is
// permissive and reports every name as resolvable: dropping everything
// because the oracle is down would silently disable discovery.
type Resolver struct {
	python string
	log    ports.Logger

	once  sync.Once
	paths []string
	ready bool
}

// NewResolver creates a Resolver that probes the given interpreter.
func NewResolver(python string, log ports.Logger) *Resolver {
	return &Resolver{python: python, log: log}
}

// Resolves reports whether the named module is present in the
// environment's search path. Dotted names are resolved component by
// component under the top-level package directory.
func (r *Resolver) Resolves(name string) bool {
	r.once.Do(r.probe)

	if !r.ready {
		return true
	}

	for _, dir := range r.paths {
		if r.foundIn(dir, name) {
			return true
		}
	}
	return false
}

func (r *Resolver) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	//nolint:gosec // Interpreter name comes from configuration
	cmd := exec.CommandContext(ctx, r.python, "-c", "import json, sys; print(json.dumps(sys.path))")
	out, err := cmd.Output()
	if err != nil {
		r.log.Warn("python interpreter probe failed, treating all modules as resolvable")
		return
	}

	var paths []string
	if err := json.Unmarshal(out, &paths); err != nil {
		r.log.Error(zerr.Wrap(err, "failed to parse interpreter search path"))
		return
	}

	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue // the empty entry means the script directory
		}
		r.paths = append(r.paths, p)
	}
	r.ready = len(r.paths) > 0
}

// foundIn checks one search-path directory for the usual module shapes:
// a package directory, a plain module file, a compiled extension, or an
// installed-distribution metadata directory.
func (r *Resolver) foundIn(dir, name string) bool {
	rel := filepath.Join(strings.Split(name, ".")...)
	candidates := []string{
		filepath.Join(dir, rel),
		filepath.Join(dir, rel+".py"),
		filepath.Join(dir, rel+".so"),
		filepath.Join(dir, rel+".pyd"),
	}
	for _, c := range candidates {
		if pathExists(c) {
			return true
		}
	}
	if strings.Contains(name, ".") {
		return false
	}

	// Distribution names normalize dashes/case, so glob for metadata.
	pattern := filepath.Join(dir, strings.ToLower(name)+"-*.dist-info")
	if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
		return true
	}
	return false
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
