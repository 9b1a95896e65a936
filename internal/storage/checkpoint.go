package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/partsim/partsim/internal/particles"
)

// SaveCheckpoint writes a full exported system document as indented JSON,
// suitable for resuming the run later.
func SaveCheckpoint(path string, doc particles.State) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint reads a system document written by SaveCheckpoint.
func LoadCheckpoint(path string) (particles.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return particles.State{}, err
	}

	var doc particles.State
	if err := json.Unmarshal(data, &doc); err != nil {
		return particles.State{}, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	return doc, nil
}
