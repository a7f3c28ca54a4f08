// Package seed loads site content from a YAML document.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/model"
)

// DefaultPath is where cmd/seed looks when no file is given.
const DefaultPath = "seed/content.yaml"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates a content document. Unknown keys are rejected
// so that typos do not silently drop fields.
func Load(r io.Reader) (*model.Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c model.Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed: empty document")
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("seed: invalid content: %w", err)
	}
	return &c, nil
}

// LoadFile reads the document at path.
func LoadFile(path string) (*model.Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer f.Close()
	return Load(f)
}
