package pyenv

// SetSearchPaths bypasses the interpreter probe for tests.
func SetSearchPaths(r *Resolver, paths []string, ready bool) {
	r.once.Do(func() {})
	r.paths = paths
	r.ready = ready
}
