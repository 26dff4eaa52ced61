package ports

// ModuleResolver is the "module exists in the target environment"
// oracle used to filter discovered imports. Implementations must not
// load the module to answer; consulting an installed-package manifest
// keeps untrusted code out of the discovery process.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// Resolves reports whether the named module, top-level or dotted,
	// can be imported in the target environment.
	Resolves(name string) bool
}
