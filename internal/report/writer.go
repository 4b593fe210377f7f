package report

import (
	"encoding/json"
	"fmt"
	"os"

	"BandSentinel/internal/model"
)

// Write marshals the report as indented JSON to path, or to stdout when path
// is empty. The marshaled bytes are deterministic for identical runs: field
// order is fixed by the struct definitions and no map is serialized.
func Write(rep *model.Report, path string) error {
	data, err := Marshal(rep)
	if err != nil {
		return err
	}

	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Marshal renders the report bytes without writing them anywhere.
func Marshal(rep *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}
