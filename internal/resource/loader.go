// Package resource turns non-source assets referenced by compiled
// units (templates, stylesheets) into emitted module content.
package resource

// Loader maps a native file path to its transformed textual content.
// Implementations may apply bundler-specific transforms; a nil Loader
// on the consumer side means plain file reads.
type Loader interface {
	Get(path string) (string, error)
}
