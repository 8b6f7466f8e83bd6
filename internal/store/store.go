package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hiperfaturometro/hiperfaturometro/internal/types"
)

const (
	procurementsFile = "licitacoes.json"
	analysesFile     = "analises.json"
	casesFile        = "casos_processados.json"
)

// Store persists the latest batch-run snapshot as three flat JSON arrays.
// Each save fully replaces the previous file; reads of a missing file yield
// an empty slice. Writes go through a temp file in the same directory and a
// rename, so concurrent readers never observe a half-written snapshot.
type Store struct {
	dataDir string
}

// NewStore creates the data directory if needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// SaveProcurements replaces the collected-records snapshot.
func (s *Store) SaveProcurements(records []types.Procurement) error {
	return s.saveJSON(procurementsFile, records)
}

// SaveAnalyses replaces the analyses snapshot.
func (s *Store) SaveAnalyses(analyses []types.Analysis) error {
	return s.saveJSON(analysesFile, analyses)
}

// SaveCases replaces the materialized-cases snapshot.
func (s *Store) SaveCases(cases []types.Case) error {
	return s.saveJSON(casesFile, cases)
}

// LoadProcurements returns the last persisted records, or an empty slice.
func (s *Store) LoadProcurements() ([]types.Procurement, error) {
	records := []types.Procurement{}
	if err := s.loadJSON(procurementsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadAnalyses returns the last persisted analyses, or an empty slice.
func (s *Store) LoadAnalyses() ([]types.Analysis, error) {
	analyses := []types.Analysis{}
	if err := s.loadJSON(analysesFile, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// LoadCases returns the last persisted cases, or an empty slice.
func (s *Store) LoadCases() ([]types.Case, error) {
	cases := []types.Case{}
	if err := s.loadJSON(casesFile, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// saveJSON writes v to a temp file and renames it over the target. The
// encoder keeps non-ASCII text readable in the files (órgão names, risk
// labels) instead of escaping it.
func (s *Store) saveJSON(name string, v any) error {
	tmp, err := os.CreateTemp(s.dataDir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dataDir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// loadJSON decodes the named file into v. A missing file is not an error;
// the snapshot simply has not been produced yet.
func (s *Store) loadJSON(name string, v any) error {
	file, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
