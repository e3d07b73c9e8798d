package driver

import (
	"fmt"
	"path/filepath"

	"rsderive/internal/derive"
	"rsderive/internal/diag"
	"rsderive/internal/project"
	"rsderive/internal/source"
)

type InspectResult struct {
	FileSet *source.FileSet
	Config  project.Config
	Records []derive.RecordReport
	Bag     *diag.Bag
}

// Inspect reports how the generators see every record of one file. Syntax
// errors leave Records empty and are returned in Bag.
func Inspect(path string, maxDiagnostics int, override *project.Config) (*InspectResult, error) {
	_, cfg, err := resolveConfig(filepath.Dir(path), override)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	pr, err := parseLoaded(fs, fileID, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := &InspectResult{FileSet: fs, Config: cfg, Bag: pr.Bag}
	if pr.Bag.HasErrors() {
		return res, nil
	}
	res.Records = derive.Inspect(pr.Builder, pr.FileID, derive.ConfigFrom(cfg))
	return res, nil
}
