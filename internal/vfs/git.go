package vfs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// GitHost implements a read-only Host over a git ref (branch, tag, or
// commit). Useful as the backing layer when a build should compile a
// pristine ref instead of the working tree.
type GitHost struct {
	repoPath string
	ref      string
}

// NewGitHost creates a GitHost that reads files from the given ref in
// the repository at repoPath.
func NewGitHost(repoPath, ref string) *GitHost {
	return &GitHost{repoPath: repoPath, ref: ref}
}

func (g *GitHost) git(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", g.repoPath}, args...)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// objPath maps a Path onto a repository-relative git object path.
// Absolute paths beneath the repository root are relativized first.
func (g *GitHost) objPath(p Path) string {
	n := string(Normalize(string(p)))
	root := string(Normalize(g.repoPath))
	if n == root {
		return ""
	}
	if root != "" && strings.HasPrefix(n, root+"/") {
		n = n[len(root)+1:]
	}
	return strings.TrimPrefix(n, "/")
}

// Read returns the contents of the file at p from the git ref.
func (g *GitHost) Read(p Path) ([]byte, error) {
	obj := g.objPath(p)
	if obj == "" || obj == "." {
		return nil, fmt.Errorf("cannot read directory as file")
	}
	cmd := exec.Command("git", "-C", g.repoPath, "show", g.ref+":"+obj)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if strings.Contains(stderr, "not exist") {
				return nil, os.ErrNotExist
			}
			return nil, fmt.Errorf("git show: %s", stderr)
		}
		return nil, err
	}
	return out, nil
}

// Write is not supported: the ref is immutable.
func (g *GitHost) Write(p Path, data []byte) error {
	return errors.New("git host is read-only")
}

// Delete is not supported: the ref is immutable.
func (g *GitHost) Delete(p Path) error {
	return errors.New("git host is read-only")
}

// Stat returns metadata for the file or directory at p in the git ref.
func (g *GitHost) Stat(p Path) (Stats, error) {
	obj := g.objPath(p)

	// For root, check if the ref exists at all
	if obj == "" || obj == "." {
		if _, err := g.git("rev-parse", "--verify", g.ref); err != nil {
			return Stats{}, os.ErrNotExist
		}
		return Stats{IsDir: true, ModTime: g.modTime(".")}, nil
	}

	// Use ls-tree to determine if the path is a file or directory
	out, err := g.git("ls-tree", g.ref, obj)
	if err != nil {
		return Stats{}, os.ErrNotExist
	}

	out = strings.TrimSpace(out)
	if out == "" {
		// Maybe it's a directory — try with trailing slash
		out, err = g.git("ls-tree", g.ref, obj+"/")
		if err != nil || strings.TrimSpace(out) == "" {
			return Stats{}, os.ErrNotExist
		}
		return Stats{IsDir: true, ModTime: g.modTime(obj)}, nil
	}

	// Parse ls-tree output: "<mode> <type> <hash>\t<name>"
	fields := strings.Fields(out)
	if len(fields) < 4 {
		return Stats{}, os.ErrNotExist
	}
	objType := fields[1]

	mt := g.modTime(obj)

	if objType == "tree" {
		return Stats{IsDir: true, ModTime: mt}, nil
	}

	// It's a blob — get its size
	var size int64
	if sizeOut, err := g.git("cat-file", "-s", g.ref+":"+obj); err == nil {
		size, _ = strconv.ParseInt(strings.TrimSpace(sizeOut), 10, 64)
	}

	return Stats{
		Size:      size,
		ModTime:   mt,
		ATime:     mt,
		BirthTime: mt,
		IsFile:    true,
	}, nil
}

// List returns the names of the immediate children of the directory
// at p in the git ref.
func (g *GitHost) List(p Path) ([]string, error) {
	obj := g.objPath(p)
	if obj == "." {
		obj = ""
	}

	var out string
	var err error
	if obj == "" {
		out, err = g.git("ls-tree", g.ref)
	} else {
		out, err = g.git("ls-tree", g.ref, obj+"/")
	}
	if err != nil {
		return nil, os.ErrNotExist
	}

	out = strings.TrimSpace(out)
	if out == "" {
		// Empty output is either an empty tree or not a directory at
		// all; only the former lists successfully
		st, statErr := g.Stat(p)
		if statErr != nil || !st.IsDir {
			return nil, os.ErrNotExist
		}
		return []string{}, nil
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tabIdx := strings.IndexByte(line, '\t')
		if tabIdx < 0 {
			continue
		}
		names = append(names, Path(line[tabIdx+1:]).Base())
	}

	return names, nil
}

// Exists reports whether p exists in the git ref.
func (g *GitHost) Exists(p Path) bool {
	_, err := g.Stat(p)
	return err == nil
}

// IsFile reports whether p is a blob in the git ref.
func (g *GitHost) IsFile(p Path) bool {
	st, err := g.Stat(p)
	return err == nil && st.IsFile
}

// IsDirectory reports whether p is a tree in the git ref.
func (g *GitHost) IsDirectory(p Path) bool {
	st, err := g.Stat(p)
	return err == nil && st.IsDir
}

func (g *GitHost) modTime(obj string) time.Time {
	var args []string
	if obj == "." || obj == "" {
		args = []string{"log", "-1", "--format=%ct", g.ref}
	} else {
		args = []string{"log", "-1", "--format=%ct", g.ref, "--", obj}
	}
	out, err := g.git(args...)
	if err != nil {
		return time.Time{}
	}
	ts := strings.TrimSpace(out)
	if ts == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
