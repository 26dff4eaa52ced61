// Package pyscan extracts import statements from Python source.
package pyscan

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImportParser = (*Parser)(nil)

// Parser implements ports.ImportParser for Python source.
//
// A strict line parser handles the two statement shapes, `import X` and
// `from X import ...`, including aliases and comma lists. When the
// strict pass hits a statement it cannot make sense of (generated or
// templated source, typically), the whole file is re-scanned with a
// looser pattern match; finding nothing that way is not an error.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	fallbackImport = regexp.MustCompile(`(?m)^\s*import\s+([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)`)
	fallbackFrom   = regexp.MustCompile(`(?m)^\s*from\s+([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)\s+import`)
)

// TopLevelImports returns the deduplicated top-level module names
// imported by src.
func (p *Parser) TopLevelImports(src []byte) []string {
	names, err := p.strictImports(src)
	if err != nil {
		names = p.fallbackImports(src)
	}

	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (p *Parser) strictImports(src []byte) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)

		switch {
		case line == "import" || line == "from":
			return nil, zerr.New("truncated import statement")
		case strings.HasPrefix(line, "import "):
			parsed, err := parseImportList(strings.TrimPrefix(line, "import "))
			if err != nil {
				return nil, err
			}
			names = append(names, parsed...)
		case strings.HasPrefix(line, "from "):
			name, err := parseFromModule(strings.TrimPrefix(line, "from "))
			if err != nil {
				return nil, err
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan source")
	}

	return names, nil
}

// parseImportList handles `a.b as x, c.d` after the import keyword.
func parseImportList(rest string) ([]string, error) {
	var names []string
	for _, clause := range strings.Split(rest, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, zerr.New("empty import clause")
		}
		// Drop a trailing `as alias`.
		if i := strings.Index(clause, " as "); i >= 0 {
			clause = strings.TrimSpace(clause[:i])
		}
		if !isDottedIdentifier(clause) {
			return nil, zerr.With(zerr.New("malformed import target"), "clause", clause)
		}
		names = append(names, domain.TopLevelModule(clause))
	}
	return names, nil
}

// parseFromModule handles `x.y import ...` after the from keyword. A
// relative import (`from . import x`) names no external module and
// contributes nothing.
func parseFromModule(rest string) (string, error) {
	module, tail, found := strings.Cut(rest, " import")
	if !found {
		return "", zerr.With(zerr.New("from statement without import"), "statement", rest)
	}
	if tail != "" && !strings.HasPrefix(tail, " ") && !strings.HasPrefix(tail, "(") {
		return "", zerr.With(zerr.New("malformed from statement"), "statement", rest)
	}

	module = strings.TrimSpace(module)
	if strings.HasPrefix(module, ".") {
		return "", nil
	}
	if !isDottedIdentifier(module) {
		return "", zerr.With(zerr.New("malformed from module"), "module", module)
	}
	return domain.TopLevelModule(module), nil
}

func (p *Parser) fallbackImports(src []byte) []string {
	var names []string
	for _, pattern := range []*regexp.Regexp{fallbackImport, fallbackFrom} {
		for _, match := range pattern.FindAllSubmatch(src, -1) {
			names = append(names, domain.TopLevelModule(string(match[1])))
		}
	}
	return names
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func isDottedIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
