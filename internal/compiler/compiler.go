// Package compiler defines the host contract a compiler front end uses
// to reach the filesystem, plus the parsed source representation it
// hands back. The contract is satisfied by internal/host; nothing in
// this package touches the filesystem itself.
package compiler

import (
	"fmt"
	"strings"
)

// ScriptTarget selects the language version a source file is parsed
// against.
type ScriptTarget int

// Supported language versions, oldest first.
const (
	ES5 ScriptTarget = iota
	ES2015
	ES2017
	ES2020
	ESNext
)

func (t ScriptTarget) String() string {
	switch t {
	case ES5:
		return "es5"
	case ES2015:
		return "es2015"
	case ES2017:
		return "es2017"
	case ES2020:
		return "es2020"
	case ESNext:
		return "esnext"
	}
	return fmt.Sprintf("ScriptTarget(%d)", int(t))
}

// Options carries the compiler configuration. The host treats it as
// opaque apart from Target, which drives default-library resolution.
type Options struct {
	Target         ScriptTarget
	BaseURL        string
	Declaration    bool
	SourceMap      bool
	StrictChecks   bool
	OutDir         string
	RootDir        string
	TypeRoots      []string
	EmitDecorators bool
}

// Host is the operation set the compiler requires from its
// environment: source acquisition, emit, and the path conventions the
// resolver depends on.
type Host interface {
	GetSourceFile(fileName string, languageVersion ScriptTarget, onError func(message string)) *SourceFile
	GetDefaultLibFileName(options Options) string
	WriteFile(fileName string, data string, writeByteOrderMark bool, onError func(message string))
	GetCurrentDirectory() string
	GetCanonicalFileName(fileName string) string
	UseCaseSensitiveFileNames() bool
	GetNewLine() string
	FileExists(fileName string) bool
	ReadFile(fileName string) (string, bool)
	DirectoryExists(directoryName string) bool
	GetDirectories(path string) []string
}

// ParseTarget converts a configuration string into a ScriptTarget.
func ParseTarget(s string) (ScriptTarget, error) {
	switch strings.ToLower(s) {
	case "", "es5":
		return ES5, nil
	case "es6", "es2015":
		return ES2015, nil
	case "es2017":
		return ES2017, nil
	case "es2020":
		return ES2020, nil
	case "esnext":
		return ESNext, nil
	}
	return ES5, fmt.Errorf("unknown target %q", s)
}

// DefaultLibFileName returns the bundled declaration file for the
// configured language target.
func DefaultLibFileName(options Options) string {
	switch options.Target {
	case ES2015:
		return "lib.es2015.d.ts"
	case ES2017:
		return "lib.es2017.d.ts"
	case ES2020:
		return "lib.es2020.d.ts"
	case ESNext:
		return "lib.esnext.d.ts"
	default:
		return "lib.d.ts"
	}
}
