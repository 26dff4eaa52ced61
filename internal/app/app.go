// Package app implements the application layer for ship: the packaging
// flow that ties the cache, the import discoverer and the external
// engine together.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/engine/cache"
	"go.trai.ch/ship/internal/engine/discover"
	"go.trai.ch/zerr"
)

// Packager runs a packaging invocation end to end: serve from cache
// when possible, otherwise discover hidden imports, run the engine and
// cache the result.
type Packager struct {
	settings domain.EngineSettings
	cache    *cache.Cache
	discover *discover.Discoverer
	engine   ports.Engine
	files    ports.ArtifactStore
	log      ports.Logger
	tracer   ports.Tracer
}

// New creates a Packager.
func New(
	settings domain.EngineSettings,
	buildCache *cache.Cache,
	discoverer *discover.Discoverer,
	eng ports.Engine,
	files ports.ArtifactStore,
	log ports.Logger,
	tracer ports.Tracer,
) *Packager {
	return &Packager{
		settings: settings,
		cache:    buildCache,
		discover: discoverer,
		engine:   eng,
		files:    files,
		log:      log,
		tracer:   tracer,
	}
}

// Result describes a completed packaging run.
type Result struct {
	// OutputDir is where the build output was delivered.
	OutputDir string
	// CacheHit is true when the output came from the cache instead of a
	// fresh engine run.
	CacheHit bool
	// HiddenImports are the discovered modules passed to the engine.
	// Empty on cache hits.
	HiddenImports []string
}

// Package executes one packaging invocation and delivers the output to
// outputDir (the configured default when empty). Invocations without a
// recognizable entry script still build, but without caching or import
// discovery.
func (p *Packager) Package(ctx context.Context, invocation, outputDir string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "app.package")
	defer span.End()

	if invocation == "" {
		return nil, domain.ErrNoScript
	}
	if outputDir == "" {
		outputDir = p.settings.OutputDir
	}

	invocation = p.normalize(invocation)

	script := domain.ExtractScriptPath(invocation)
	if script != "" {
		if _, err := os.Stat(script); err != nil {
			return nil, zerr.With(domain.ErrScriptNotFound, "path", script)
		}

		if artifact, hit := p.cache.Lookup(ctx, script, invocation); hit {
			if err := p.files.Deliver(artifact, outputDir); err != nil {
				// A hit that cannot be delivered falls back to a normal
				// build; the user came for an executable, not a cache.
				p.log.Warn("cached build could not be delivered, rebuilding")
				span.RecordError(err)
			} else {
				p.log.Info("reusing cached build")
				span.SetAttribute("cache_hit", true)
				return &Result{OutputDir: outputDir, CacheHit: true}, nil
			}
		}
	}

	var hints []string
	if script != "" {
		hints = p.discover.Discover(ctx, script)
	}

	args := domain.SplitInvocation(invocation)
	for _, hint := range hints {
		args = append(args, "--hidden-import", hint)
	}

	dist, err := os.MkdirTemp("", "ship-dist-*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create staging directory")
	}
	defer func() {
		if rmErr := os.RemoveAll(dist); rmErr != nil {
			p.log.Warn("failed to remove staging directory " + dist)
		}
	}()

	if err := p.engine.Build(ctx, args, dist); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := p.files.Deliver(dist, outputDir); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to deliver build output")
	}

	if script != "" {
		// Caching is best effort; the build already succeeded.
		if err := p.cache.Store(ctx, script, invocation, dist); err != nil {
			p.log.Warn("build completed but could not be cached")
			span.RecordError(err)
		}
	}

	return &Result{OutputDir: outputDir, HiddenImports: hints}, nil
}

// WillOverwrite reports whether running the invocation would replace a
// previous build in outputDir, so the front end can ask before
// clobbering it. Only the entry the engine would actually write counts;
// unrelated files in the output directory are left alone and do not
// trigger a prompt.
func (p *Packager) WillOverwrite(invocation, outputDir string) bool {
	if outputDir == "" {
		outputDir = p.settings.OutputDir
	}

	invocation = p.normalize(invocation)
	name := domain.OutputName(invocation)
	if name == "" {
		return false
	}

	if domain.OneFile(invocation) {
		// One-file builds produce a single executable, with or without
		// a platform suffix.
		return exists(filepath.Join(outputDir, name+".exe")) ||
			exists(filepath.Join(outputDir, name))
	}
	return exists(filepath.Join(outputDir, name))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// normalize prepends the configured engine command to a bare script
// invocation, so "app.py" and "pyinstaller app.py" key to the same
// cache signature.
func (p *Packager) normalize(invocation string) string {
	if tokens := domain.SplitInvocation(invocation); len(tokens) > 0 && strings.HasSuffix(tokens[0], ".py") {
		return p.settings.Command + " " + invocation
	}
	return invocation
}

// CachePath returns the artifact path a future run of invocation would
// reuse, or false when the cache holds nothing for it.
func (p *Packager) CachePath(ctx context.Context, invocation string) (string, bool) {
	invocation = p.normalize(invocation)
	script := domain.ExtractScriptPath(invocation)
	if script == "" {
		return "", false
	}
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}
	return p.cache.Lookup(ctx, script, invocation)
}
