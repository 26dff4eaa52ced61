package ports

// ImportParser extracts top-level module names from source text.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type ImportParser interface {
	// TopLevelImports returns the first dotted component of every
	// import statement in src, deduplicated, in no particular order.
	// Malformed source contributes whatever a best-effort pattern scan
	// can still find; an empty result is not an error.
	TopLevelImports(src []byte) []string
}
