package domain

import (
	"path/filepath"
	"strings"
)

// SplitInvocation splits a packaging invocation string into arguments.
// Single and double quotes group words and are stripped, which covers
// the quoting the front end produces for paths with spaces. It is not a
// full shell parser; backslash escapes are passed through untouched.
func SplitInvocation(invocation string) []string {
	var (
		args    []string
		current strings.Builder
		quote   byte
		inArg   bool
	)

	for i := 0; i < len(invocation); i++ {
		c := invocation[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inArg = true
		case c == ' ' || c == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteByte(c)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

// ExtractScriptPath returns the entry script from an invocation string:
// the first argument that is not a flag and ends in ".py". An empty
// string means the invocation carries no recognizable script, in which
// case caching and discovery are skipped for the run.
func ExtractScriptPath(invocation string) string {
	for _, arg := range SplitInvocation(invocation) {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if strings.HasSuffix(arg, ".py") {
			return arg
		}
	}
	return ""
}

// OutputName returns the name the engine will give the produced
// application: an explicit --name/-n flag wins, otherwise the entry
// script's base name. Empty when neither is present.
func OutputName(invocation string) string {
	args := SplitInvocation(invocation)
	for i, arg := range args {
		switch {
		case arg == "--name" || arg == "-n":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--name="):
			return strings.TrimPrefix(arg, "--name=")
		}
	}
	if script := ExtractScriptPath(invocation); script != "" {
		return strings.TrimSuffix(filepath.Base(script), ".py")
	}
	return ""
}

// OneFile reports whether the invocation asks for a single-file bundle.
func OneFile(invocation string) bool {
	for _, arg := range SplitInvocation(invocation) {
		if arg == "--onefile" || arg == "-F" {
			return true
		}
	}
	return false
}
