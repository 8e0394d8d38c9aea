// Package scenario reads and writes inputs as hand-editable YAML files.
package scenario

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/fyfire/internal/model"
)

const header = `# fyfire scenario
# Amounts are pounds. Rates are percentages (4 means 4%).
# Missing keys fall back to the defaults when imported.
`

// File is the on-disk layout of a scenario.
type File struct {
	Version int          `yaml:"version"`
	Inputs  model.Inputs `yaml:"inputs"`
}

// ErrEmpty is returned when a scenario file has no content.
var ErrEmpty = errors.New("scenario file is empty")

// Export writes the inputs as a scenario file.
func Export(w io.Writer, in model.Inputs) error {
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Version: model.SchemaVersion, Inputs: in}); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}

// Import reads a scenario file, merges it over the defaults and validates
// the result. Unknown keys are rejected so typos don't silently vanish.
func Import(r io.Reader) (model.Inputs, error) {
	f := File{Inputs: model.DefaultInputs()}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return model.DefaultInputs(), ErrEmpty
		}
		return model.DefaultInputs(), fmt.Errorf("decoding scenario: %w", err)
	}

	if f.Version > model.SchemaVersion {
		return model.DefaultInputs(), fmt.Errorf("scenario version %d is newer than supported version %d",
			f.Version, model.SchemaVersion)
	}

	if err := f.Inputs.Validate(); err != nil {
		return f.Inputs, fmt.Errorf("invalid scenario: %w", err)
	}
	return f.Inputs, nil
}
