// Package publish orchestrates turning a pack into a registry upload: stage
// an archive file exclusively, build the filtered tarball into it, find the
// readme, and stream everything to the registry. The pipeline either fully
// succeeds or leaves no staged artifact behind a half-finished upload; every
// handle it opens is released on every exit path. VCS tagging is a separate,
// caller-invoked step.
package publish

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packship/pkg/archive"
	"github.com/arthur-debert/packship/pkg/errors"
	"github.com/arthur-debert/packship/pkg/logging"
	"github.com/arthur-debert/packship/pkg/pack"
	"github.com/arthur-debert/packship/pkg/readme"
	"github.com/arthur-debert/packship/pkg/registry"
)

// Pipeline publishes packs to one registry namespace
type Pipeline struct {
	registry  registry.Publisher
	namespace string
	logger    zerolog.Logger
}

// NewPipeline creates a pipeline uploading through reg into namespace
func NewPipeline(reg registry.Publisher, namespace string) *Pipeline {
	return &Pipeline{
		registry:  reg,
		namespace: namespace,
		logger:    logging.GetLogger("publish"),
	}
}

// Publish uploads p to the registry. The staging archive is created with
// exclusive-create semantics: a concurrent publish of the same directory
// surfaces as an ErrStagingExists error rather than silently overwriting.
func (pl *Pipeline) Publish(p *pack.Pack) error {
	if err := p.Validate(); err != nil {
		return err
	}

	staging := filepath.Join(p.Path, pack.StagingFileName)
	if err := os.Remove(staging); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrInternal, "cannot remove stale archive %s", staging)
	}

	tarFile, err := createStaging(staging)
	if err != nil {
		return err
	}
	defer tarFile.Close()

	if err := tarFile.Truncate(0); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot truncate %s", staging)
	}
	if err := archive.Build(p.Path, p.ArchiveBaseName(), p.IgnoreRules(), tarFile); err != nil {
		return err
	}
	if _, err := tarFile.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot rewind %s", staging)
	}

	rm, err := readme.Locate(p.Path)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot scan for readme")
	}
	if !rm.Found() {
		pl.logger.Warn().Str("pack", p.Name()).Msg("no readme.md file detected")
	}
	readmeStream, err := rm.Open()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot open readme")
	}
	defer readmeStream.Close()

	description, err := os.Open(p.ManifestPath())
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestLoad, "cannot open %s", p.ManifestPath())
	}
	defer description.Close()

	return pl.registry.Publish(
		pl.namespace,
		p.Name(),
		p.Version().String(),
		description,
		tarFile,
		readmeStream,
		rm.Extension(),
	)
}

// createStaging creates the staging archive with exclusive-create semantics.
// Losing the race to a concurrent publish is a distinct, catchable failure.
func createStaging(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Newf(errors.ErrStagingExists, "%s already exists: another publish in progress?", path)
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot create %s", path)
	}
	return f, nil
}
