// Package archive writes the filtered tar.gz distributable of a package
// directory. Every entry lives under a single <name>-<version>/ root so that
// extracting different versions into one location never collides.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/ignore"
	"github.com/arthur-debert/packship/pkg/logging"
)

// Build walks sourceDir and writes a gzip-compressed tar of its contents to
// out, which must be positioned at the start and open for writing. Paths
// matching rules are omitted entirely, descendants included. The source tree
// is never modified.
func Build(sourceDir, baseName string, rules *ignore.RuleSet, out io.Writer) error {
	logger := logging.GetLogger("archive")
	logger.Info().Str("root", baseName).Msg("generating archive")

	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		name := baseName
		if rel != "." {
			name = baseName + "/" + filepath.ToSlash(rel)
		}
		if rules.Matches(unprefixed(name, baseName)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		return addEntry(tw, path, name, d)
	})
	if walkErr != nil {
		return errors.Wrap(walkErr, errors.ErrArchiveBuild, "archive generation failed")
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrArchiveBuild, "cannot finalize archive")
	}
	if err := gzw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrArchiveBuild, "cannot finalize compression")
	}
	return nil
}

// unprefixed strips the "<baseName>/" prefix to recover the path relative to
// the package root, which is what ignore rules are written against. Entry
// names are always assigned under baseName, so the fallback to the raw name
// should never trigger.
func unprefixed(name, baseName string) string {
	if name == baseName {
		return ""
	}
	if strings.HasPrefix(name, baseName+"/") {
		return name[len(baseName)+1:]
	}
	return name
}

func addEntry(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		link, err = os.Readlink(path)
		if err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
