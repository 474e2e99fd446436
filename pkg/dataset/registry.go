package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"gopkg.in/yaml.v3"
)

// Registry is an ordered list of object identities produced by Generate and
// consumed by Verify. Position in the Registry is the object index.
type Registry struct {
	ids []oid.ID
}

// NewRegistry returns Registry holding copy of the given identities.
func NewRegistry(ids ...oid.ID) *Registry {
	return &Registry{ids: append([]oid.ID(nil), ids...)}
}

// Len returns number of identities. Nil Registry is empty.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.ids)
}

// At returns identity of the object with the given index.
func (r *Registry) At(i int) oid.ID {
	return r.ids[i]
}

// IDs returns copy of all identities in order.
func (r *Registry) IDs() []oid.ID {
	if r == nil {
		return nil
	}

	return append([]oid.ID(nil), r.ids...)
}

func (r *Registry) add(id oid.ID) {
	r.ids = append(r.ids, id)
}

const registryVersion = 1

type registryDoc struct {
	Version int      `yaml:"version"`
	Objects []string `yaml:"objects"`
}

// Encode writes Registry to w as YAML document.
func (r *Registry) Encode(w io.Writer) error {
	doc := registryDoc{
		Version: registryVersion,
		Objects: make([]string, r.Len()),
	}

	for i := range doc.Objects {
		doc.Objects[i] = r.ids[i].String()
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	return enc.Close()
}

// DecodeRegistry reads Registry written by Encode.
func DecodeRegistry(rd io.Reader) (*Registry, error) {
	var doc registryDoc

	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	if doc.Version != registryVersion {
		return nil, fmt.Errorf("unsupported registry version %d", doc.Version)
	}

	r := &Registry{ids: make([]oid.ID, len(doc.Objects))}
	for i := range doc.Objects {
		if err := r.ids[i].DecodeString(doc.Objects[i]); err != nil {
			return nil, fmt.Errorf("invalid object #%d: %w", i, err)
		}
	}

	return r, nil
}

// WriteFile writes Registry to the file, replacing it.
func (r *Registry) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("open registry file: %w", err)
	}

	err = r.Encode(f)
	if cErr := f.Close(); err == nil && cErr != nil {
		err = fmt.Errorf("close registry file: %w", cErr)
	}

	return err
}

// ReadRegistry reads Registry from the file written by WriteFile.
func ReadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry file: %w", err)
	}
	defer f.Close()

	return DecodeRegistry(f)
}
