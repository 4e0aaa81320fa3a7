// Package manifest reads and writes package description files. The
// description is a JSON object whose key order is significant to users (name
// and version first, by convention), so it is held in an order-preserving
// map and round-trips byte-for-byte stable.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/iancoleman/orderedmap"

	"github.com/arthur-debert/packship/pkg/errors"
)

// Manifest is an ordered key-value package description
type Manifest struct {
	om *orderedmap.OrderedMap
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{om: orderedmap.New()}
}

// Load reads and parses the description file at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read %s", path)
	}
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot parse %s", path)
	}
	return &Manifest{om: om}, nil
}

// Save serializes the manifest back to path, preserving key order
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m.om, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "cannot serialize manifest")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "cannot write %s", path)
	}
	return nil
}

// IsEmpty reports whether the manifest holds no keys at all
func (m *Manifest) IsEmpty() bool {
	return len(m.om.Keys()) == 0
}

// Keys returns the manifest keys in insertion order
func (m *Manifest) Keys() []string {
	return m.om.Keys()
}

// Get returns the raw value for key
func (m *Manifest) Get(key string) (interface{}, bool) {
	return m.om.Get(key)
}

// Set stores a value for key, appending it when the key is new
func (m *Manifest) Set(key string, value interface{}) {
	m.om.Set(key, value)
}

// GetString returns the value for key if it is a string, "" otherwise
func (m *Manifest) GetString(key string) string {
	v, ok := m.om.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Name returns the declared package name, "" when absent
func (m *Manifest) Name() string {
	return m.GetString("name")
}

// SetName updates the declared package name
func (m *Manifest) SetName(name string) {
	m.om.Set("name", name)
}

// VersionString returns the declared version string. An absent or
// non-string version field is an error: a description without a version
// does not describe a publishable package.
func (m *Manifest) VersionString() (string, error) {
	v, ok := m.om.Get("version")
	if !ok {
		return "", errors.New(errors.ErrManifestLoad, "description has no version field")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.New(errors.ErrManifestLoad, "description version field is not a string")
	}
	return s, nil
}

// SetVersionString updates the declared version
func (m *Manifest) SetVersionString(version string) {
	m.om.Set("version", version)
}
