package sitepipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

const (
	permDir  os.FileMode = 0o755
	permFile os.FileMode = 0o644
)

// OutputFile writes data to filename, creating parent directories
// and truncating any existing file.
func OutputFile(fs afero.Fs, filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := fs.MkdirAll(dir, permDir); err != nil {
		return writeError{err: err, target: filename}
	}

	if err := afero.WriteFile(fs, filename, data, permFile); err != nil {
		return writeError{err: err, target: filename}
	}

	return nil
}

// WriteFileAtomic writes data next to filename and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(fs afero.Fs, filename string, data []byte) error {
	tmp := filename + ".tmp"
	if err := OutputFile(fs, tmp, data); err != nil {
		return err
	}

	if err := fs.Rename(tmp, filename); err != nil {
		_ = fs.Remove(tmp)
		return writeError{err: err, target: filename}
	}

	return nil
}

// CopyInto copies src into dstDir with cp -Rf semantics:
// a file lands at dstDir/base(src), a directory at dstDir/base(src),
// and a source ending in "/*" has its contents copied into dstDir.
func CopyInto(fs afero.Fs, src, dstDir string) error {
	contents := false
	if strings.HasSuffix(src, "/*") {
		src = strings.TrimSuffix(src, "/*")
		contents = true
	}

	stat, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat copy src '%s': %w", src, err)
	}

	if !stat.IsDir() {
		return CopyFile(fs, src, filepath.Join(dstDir, filepath.Base(src)))
	}

	dst := dstDir
	if !contents {
		dst = filepath.Join(dstDir, filepath.Base(src))
	}

	return CopyDir(fs, src, dst)
}

// CopyDir recursively copies src to dst, overwriting existing files.
func CopyDir(fs afero.Fs, src, dst string) error {
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, permDir)
		}

		return CopyFile(fs, path, target)
	})
	if err != nil {
		return fmt.Errorf("walk failed for src '%s', dst '%s': %w", src, dst, err)
	}

	return nil
}

func CopyFile(fs afero.Fs, src, dst string) error {
	b, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("error reading src: %w", err)
	}

	err = OutputFile(fs, dst, b)
	if err != nil {
		return fmt.Errorf("error writing to dst: %w", err)
	}

	return nil
}

// ExpandGlobs expands doublestar patterns into file paths.
// Plain paths are kept as-is, in order. Matches of one pattern are sorted.
func ExpandGlobs(fs afero.Fs, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !isGlob(pattern) {
			files = append(files, pattern)
			continue
		}

		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		fsys := afero.NewIOFS(afero.NewBasePathFs(fs, filepath.FromSlash(base)))

		matches, err := doublestar.Glob(fsys, rest, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern '%s': %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob pattern '%s' matched no files", pattern)
		}

		sort.Strings(matches)
		for _, m := range matches {
			files = append(files, filepath.Join(base, filepath.FromSlash(m)))
		}
	}

	return files, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
