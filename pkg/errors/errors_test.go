package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrManifestLoad, "manifest missing")
	assert.Equal(t, ErrManifestLoad, err.Code)
	assert.Equal(t, "[MANIFEST_LOAD] manifest missing", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("open module.json: no such file")
	err := Wrap(inner, ErrManifestLoad, "cannot read description")

	assert.Equal(t, "[MANIFEST_LOAD] cannot read description: open module.json: no such file", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "ignored %d", 1))
}

func TestIsMatchesOnCode(t *testing.T) {
	err := Newf(ErrStagingExists, "upload.tar.gz already exists")

	assert.True(t, errors.Is(err, New(ErrStagingExists, "any message")))
	assert.False(t, errors.Is(err, New(ErrRegistryPublish, "any message")))
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	inner := New(ErrStagingExists, "collision")
	outer := fmt.Errorf("publish failed: %w", inner)

	assert.True(t, IsCode(outer, ErrStagingExists))
	assert.False(t, IsCode(outer, ErrVCSDirty))
	assert.Equal(t, ErrStagingExists, GetCode(outer))
}

func TestGetCodeUnknownForPlainErrors(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrPackInvalid, "bad pack").WithDetail("path", "/tmp/p")
	require.Contains(t, err.Details, "path")
	assert.Equal(t, "/tmp/p", err.Details["path"])
}
