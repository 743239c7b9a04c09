// Package instanceio loads and saves rectpack instances and results.
// Programmatic persistence of a problem/solution pair is ambient tooling a
// production packing service always carries, distinct from the
// command-line/UI surface spec.md explicitly excludes.
package instanceio

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/piwi3910/rectpack"
)

// SaveJSON persists inst to path as indented JSON, creating any missing
// parent directories and filling in a short ID if inst doesn't already have
// one, mirroring the teacher's SaveAppConfig and model.NewPart ID idiom.
func SaveJSON(path string, inst rectpack.Instance) error {
	if inst.ID == "" {
		inst.ID = uuid.New().String()[:8]
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON reads an Instance previously written by SaveJSON.
func LoadJSON(path string) (rectpack.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rectpack.Instance{}, err
	}
	var inst rectpack.Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return rectpack.Instance{}, err
	}
	return inst, nil
}

// SaveResultJSON persists a solved Result's grid (and its feasibility and
// diagnostic) as indented JSON, for callers that want to hand a witness
// tiling to another process without re-solving it.
func SaveResultJSON(path string, res rectpack.Result) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	type resultDoc struct {
		Feasible   bool    `json:"feasible"`
		Algorithm  string  `json:"algorithm"`
		Diagnostic string  `json:"diagnostic,omitempty"`
		Grid       [][]int `json:"grid,omitempty"`
	}
	doc := resultDoc{Feasible: res.Feasible, Algorithm: res.Algorithm.String(), Diagnostic: res.Diagnostic}
	if res.Feasible && res.Grid != nil {
		doc.Grid = res.Grid.ToMatrix()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
