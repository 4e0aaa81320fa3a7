// Package registry talks to the package registry. The publish pipeline only
// depends on the Publisher capability; the HTTP client in this package is
// the one real implementation.
package registry

import "io"

// Publisher uploads one package version to a registry namespace. The
// description, tarball and readme streams are read fully; readme may be an
// empty stream with an empty extension when the package ships no readme.
type Publisher interface {
	Publish(namespace, name, version string, description, tarball, readme io.Reader, readmeExt string) error
}
