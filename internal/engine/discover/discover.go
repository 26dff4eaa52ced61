// Package discover finds the hidden imports a packaging engine would
// miss: top-level modules imported by a script and its local helpers,
// filtered down to names the target environment can actually load.
package discover

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// submoduleHints maps packages whose dynamically loaded submodules are
// invisible to static import analysis onto the submodules a bundled
// application needs at runtime.
var submoduleHints = map[string][]string{
	"tkinter":    {"tkinter.ttk", "tkinter.messagebox", "tkinter.filedialog"},
	"PyQt5":      {"PyQt5.QtCore", "PyQt5.QtGui", "PyQt5.QtWidgets"},
	"PyQt6":      {"PyQt6.QtCore", "PyQt6.QtGui", "PyQt6.QtWidgets"},
	"PySide2":    {"PySide2.QtCore", "PySide2.QtGui", "PySide2.QtWidgets"},
	"PySide6":    {"PySide6.QtCore", "PySide6.QtGui", "PySide6.QtWidgets"},
	"matplotlib": {"matplotlib.backends", "matplotlib.backends.backend_tkagg"},
	"numpy":      {"numpy.core", "numpy.lib"},
	"pandas":     {"pandas.io", "pandas.plotting"},
}

// metaModules never name a real package and are dropped outright.
var metaModules = map[string]struct{}{
	"__future__": {},
	"__main__":   {},
	"typing":     {},
}

// Discoverer walks a script and its same-directory helper modules,
// collecting candidate hidden imports.
type Discoverer struct {
	settings domain.DiscoverSettings
	parser   ports.ImportParser
	resolver ports.ModuleResolver
	log      ports.Logger
	tracer   ports.Tracer
}

// New creates a Discoverer.
func New(
	settings domain.DiscoverSettings,
	parser ports.ImportParser,
	resolver ports.ModuleResolver,
	log ports.Logger,
	tracer ports.Tracer,
) *Discoverer {
	return &Discoverer{
		settings: settings,
		parser:   parser,
		resolver: resolver,
		log:      log,
		tracer:   tracer,
	}
}

// Discover returns the sorted hidden-import candidates for scriptPath.
// Discovery is advisory: when it is disabled or the script cannot be
// read at all, the result is nil and the build proceeds without hints.
func (d *Discoverer) Discover(ctx context.Context, scriptPath string) []string {
	_, span := d.tracer.Start(ctx, "discover.scan")
	defer span.End()

	if !d.settings.Enabled {
		return nil
	}

	abs, err := filepath.Abs(scriptPath)
	if err != nil {
		abs = scriptPath
	}

	set := domain.NewModuleSet()
	if !d.scanFile(set, abs, 0) {
		span.SetAttribute("unreadable", true)
		return nil
	}
	span.SetAttribute("files_scanned", set.VisitedCount())

	d.expand(set)
	d.filter(set)

	return set.Sorted()
}

// scanFile parses one source file into the set, recurses into local
// packages it imports, and then scans every other source file in its
// directory. It reports whether the file could be read; for recursive
// calls an unreadable file is merely skipped.
func (d *Discoverer) scanFile(set *domain.ModuleSet, path string, depth int) bool {
	if depth > d.settings.ScanDepth {
		return true
	}
	if set.MarkVisited(path) {
		return true
	}
	if !strings.HasSuffix(path, ".py") {
		return true
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	dir := filepath.Dir(path)
	for _, name := range d.parser.TopLevelImports(src) {
		set.Add(name)

		// An import that names a sibling source file is a local module.
		// It travels with the script by path, so it is not a hidden
		// import itself, but its own imports still count.
		local, ok := localModulePath(dir, name)
		if !ok {
			continue
		}
		set.Remove(name)
		if !d.scanFile(set, local, depth+1) {
			d.log.Warn("skipping unreadable local module " + local)
		}
	}

	// Every sibling source file gets scanned too, imported or not: a
	// plugin file loaded through reflection is never imported by name,
	// but the modules it needs still have to ship with the bundle.
	d.scanSiblings(set, dir, depth+1)
	return true
}

// scanSiblings scans the source files directly inside dir, without
// descending into subdirectories.
func (d *Discoverer) scanSiblings(set *domain.ModuleSet, dir string, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		d.log.Warn("cannot list source directory " + dir)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}
		sibling := filepath.Join(dir, entry.Name())
		if !d.scanFile(set, sibling, depth) {
			d.log.Warn("skipping unreadable sibling " + sibling)
		}
	}
}

// localModulePath resolves an import name against the importing file's
// directory, for both single-file modules and packages.
func localModulePath(dir, name string) (string, bool) {
	file := filepath.Join(dir, name+".py")
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return file, true
	}
	initFile := filepath.Join(dir, name, "__init__.py")
	if info, err := os.Stat(initFile); err == nil && !info.IsDir() {
		return initFile, true
	}
	return "", false
}

// filter drops modules the bundled application will find without help:
// interpreter built-ins ship with every bundle, and names the target
// environment cannot resolve would only make the engine fail. It runs
// after expansion so hinted submodules face the resolver too.
func (d *Discoverer) filter(set *domain.ModuleSet) {
	for _, name := range set.Sorted() {
		if _, meta := metaModules[name]; meta {
			set.Remove(name)
			continue
		}
		if isStandardLibrary(domain.TopLevelModule(name)) {
			set.Remove(name)
			continue
		}
		if !d.resolver.Resolves(name) {
			d.log.Warn("dropping unresolvable import " + name)
			set.Remove(name)
		}
	}
}

// expand adds the known dynamically loaded submodules of discovered
// packages.
func (d *Discoverer) expand(set *domain.ModuleSet) {
	for pkg, subs := range submoduleHints {
		if !set.Has(pkg) {
			continue
		}
		for _, sub := range subs {
			set.Add(sub)
		}
	}
}
