// Package host adapts the compiler's file-access contract onto the
// layered virtual filesystem, so the compiler never learns whether a
// file lives on disk, in memory, or was generated during the build.
package host

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	"hostbridge/internal/compiler"
	"hostbridge/internal/resource"
	"hostbridge/internal/vfs"
)

// Suffixes of compiler-generated output modules. Generated files are
// only known after a compilation pass, so they are discovered from the
// overlay change log rather than listed up front.
var generatedSuffixes = []string{".ngfactory.js", ".ngstyle.js"}

// CompilerHost satisfies compiler.Host on top of an OverlayHost. It
// additionally tracks files invalidated by an external watcher and
// exposes the generated outputs of a finished compilation pass.
type CompilerHost struct {
	options       compiler.Options
	basePath      vfs.Path
	fs            *vfs.OverlayHost
	loader        resource.Loader
	caseSensitive bool

	// The changed set is written from watcher callbacks, which run on
	// their own goroutine.
	mu      sync.Mutex
	changed map[vfs.Path]struct{}
}

// NewCompilerHost creates a CompilerHost rooted at basePath. The
// resource loader is optional; without one, resource reads are plain
// file reads.
func NewCompilerHost(options compiler.Options, basePath string, fsys *vfs.OverlayHost, loader resource.Loader) *CompilerHost {
	return &CompilerHost{
		options:       options,
		basePath:      vfs.Normalize(basePath),
		fs:            fsys,
		loader:        loader,
		caseSensitive: caseSensitiveFileNames(),
		changed:       make(map[vfs.Path]struct{}),
	}
}

func caseSensitiveFileNames() bool {
	return runtime.GOOS != "darwin" && runtime.GOOS != "windows"
}

// resolve normalizes name and roots it at the base path. Resolving an
// already-resolved path returns the same value.
func (h *CompilerHost) resolve(name string) vfs.Path {
	p := vfs.Normalize(name)
	if p.IsAbsolute() {
		return p
	}
	return vfs.Join(h.basePath, string(p))
}

// denormalize converts a resolved path to the native representation
// used by downstream consumers.
func (h *CompilerHost) denormalize(p vfs.Path) string {
	return vfs.Denormalize(p)
}

// FileExists reports whether the resolved path is a file in the
// merged overlay-plus-backing view.
func (h *CompilerHost) FileExists(fileName string) bool {
	return h.fs.IsFile(h.resolve(fileName))
}

// GeneratedFileExists reports whether the resolved path is a file
// present in the overlay only. Files that also exist in the backing
// store are real sources, not generated, and return false.
func (h *CompilerHost) GeneratedFileExists(fileName string) bool {
	p := h.resolve(fileName)
	return h.fs.Overlay().IsFile(p) && !h.fs.Backing().IsFile(p)
}

// ReadFile returns the file's text content. A missing or non-file
// path yields ok == false, never an error.
func (h *CompilerHost) ReadFile(fileName string) (string, bool) {
	data, ok := h.ReadFileBuffer(fileName)
	if !ok {
		return "", false
	}
	return string(data), true
}

// ReadFileBuffer returns the file's raw bytes. A missing or non-file
// path yields ok == false, never an error.
func (h *CompilerHost) ReadFileBuffer(fileName string) ([]byte, bool) {
	p := h.resolve(fileName)
	if !h.fs.IsFile(p) {
		return nil, false
	}
	data, err := h.fs.Read(p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// WriteFile writes text content to the resolved path. Failures are
// reported through onError instead of being returned.
func (h *CompilerHost) WriteFile(fileName string, data string, writeByteOrderMark bool, onError func(message string)) {
	if writeByteOrderMark {
		data = "\uFEFF" + data
	}
	if err := h.fs.Write(h.resolve(fileName), []byte(data)); err != nil && onError != nil {
		onError(err.Error())
	}
}

// DirectoryExists reports whether the resolved path is a directory.
func (h *CompilerHost) DirectoryExists(directoryName string) bool {
	return h.fs.IsDirectory(h.resolve(directoryName))
}

// GetDirectories lists the immediate subdirectories of the resolved
// path. Any listing failure degrades to an empty list.
func (h *CompilerHost) GetDirectories(path string) []string {
	p := h.resolve(path)
	names, err := h.fs.List(p)
	if err != nil {
		return []string{}
	}
	dirs := []string{}
	for _, name := range names {
		if h.fs.IsDirectory(vfs.Join(p, name)) {
			dirs = append(dirs, name)
		}
	}
	return dirs
}

// Stat returns a stat record for the resolved path, or nil when it
// does not exist. Fields the virtual filesystem does not track are
// filled with fixed placeholders; callers should only rely on the
// kind flags, size, and timestamps.
func (h *CompilerHost) Stat(path string) *Stats {
	p := h.resolve(path)
	st, err := h.fs.Stat(p)
	if err != nil {
		return nil
	}
	return newStats(st)
}

// Invalidate marks the file as changed since the last tracker reset.
// Paths that do not currently resolve to a file are ignored.
func (h *CompilerHost) Invalidate(fileName string) {
	p := h.resolve(fileName)
	if !h.fs.IsFile(p) {
		return
	}
	h.mu.Lock()
	h.changed[p] = struct{}{}
	h.mu.Unlock()
}

// ResetChangedFileTracker clears the changed-file set. Called at the
// start of a new compilation pass.
func (h *CompilerHost) ResetChangedFileTracker() {
	h.mu.Lock()
	h.changed = make(map[vfs.Path]struct{})
	h.mu.Unlock()
}

// ChangedFilePaths returns a sorted snapshot of the changed-file set.
func (h *CompilerHost) ChangedFilePaths() []string {
	h.mu.Lock()
	paths := make([]string, 0, len(h.changed))
	for p := range h.changed {
		paths = append(paths, string(p))
	}
	h.mu.Unlock()
	sort.Strings(paths)
	return paths
}

// NgFactoryPaths returns the denormalized paths of generated factory
// and style modules created in the overlay so far.
func (h *CompilerHost) NgFactoryPaths() []string {
	var paths []string
	for _, rec := range h.fs.Records() {
		if rec.Kind != vfs.RecordCreate {
			continue
		}
		for _, suffix := range generatedSuffixes {
			if strings.HasSuffix(string(rec.Path), suffix) {
				paths = append(paths, h.denormalize(rec.Path))
				break
			}
		}
	}
	return paths
}

// GetSourceFile reads and parses the file at fileName. Read failures
// are reported through onError; the result is nil when the file is
// missing or unreadable.
func (h *CompilerHost) GetSourceFile(fileName string, languageVersion compiler.ScriptTarget, onError func(message string)) *compiler.SourceFile {
	p := h.resolve(fileName)
	if !h.fs.IsFile(p) {
		return nil
	}
	data, err := h.fs.Read(p)
	if err != nil {
		if onError != nil {
			onError(err.Error())
		}
		return nil
	}
	return compiler.NewSourceFile(string(p), string(data), languageVersion)
}

// GetDefaultLibFileName delegates to the compiler's own resolution of
// its bundled declaration file.
func (h *CompilerHost) GetDefaultLibFileName(options compiler.Options) string {
	return compiler.DefaultLibFileName(options)
}

// GetCurrentDirectory returns the base path.
func (h *CompilerHost) GetCurrentDirectory() string {
	return string(h.basePath)
}

// GetCanonicalFileName returns the resolved path, lower-cased when
// file names are case-insensitive on this host.
func (h *CompilerHost) GetCanonicalFileName(fileName string) string {
	p := string(h.resolve(fileName))
	if h.caseSensitive {
		return p
	}
	return strings.ToLower(p)
}

// UseCaseSensitiveFileNames reports the canonical-name policy decided
// at construction.
func (h *CompilerHost) UseCaseSensitiveFileNames() bool {
	return h.caseSensitive
}

// GetNewLine returns the emit newline convention.
func (h *CompilerHost) GetNewLine() string {
	return "\n"
}

// ReadResource fetches a non-source asset. With a loader attached the
// denormalized path is handed to it so bundler transforms apply;
// otherwise this is a plain file read.
func (h *CompilerHost) ReadResource(fileName string) (string, error) {
	p := h.resolve(fileName)
	if h.loader != nil {
		return h.loader.Get(h.denormalize(p))
	}
	data, err := h.fs.Read(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
