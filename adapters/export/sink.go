package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"oncosense/domain/run"
	"oncosense/domain/screening"
	"oncosense/internal"
	"oncosense/internal/errors"
	"oncosense/ports"
)

// FileSink writes artifacts below <saveRoot>/<dataset>, where dataset is
// the workbook file name without its extension.
type FileSink struct {
	root   string
	logger *internal.Logger
}

var _ ports.ArtifactSink = (*FileSink)(nil)

// NewFileSink checks that saveRoot is a directory and creates a sink for
// the dataset at datasetPath
func NewFileSink(saveRoot, datasetPath string, logger *internal.Logger) (*FileSink, error) {
	if err := screening.ValidatePath(saveRoot, true); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FileSink{
		root:   filepath.Join(saveRoot, DatasetName(datasetPath)),
		logger: logger.With("export"),
	}, nil
}

// DatasetName returns the base name of path without its extension
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Root returns the dataset output folder
func (s *FileSink) Root() string {
	return s.root
}

// CellLineDir returns the output folder of a cell line
func (s *FileSink) CellLineDir(cellLine string) string {
	return filepath.Join(s.root, safeName(cellLine))
}

// WriteSheet writes <cell line>/<sheet>.csv
func (s *FileSink) WriteSheet(ctx context.Context, cellLine string, sheet *screening.Sheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.CellLineDir(cellLine)
	name := sheet.Name + ".csv"
	s.logger.Info("creating '%s'..", name)

	rows := append([][]string{sheet.Header}, sheet.Rows...)
	if err := writeCSV(filepath.Join(dir, safeName(name)), rows); err != nil {
		return errors.ExportFailed(name, err)
	}
	s.logger.Info("%s created successfully", name)
	return nil
}

// WriteManifest writes manifest.json in the dataset folder
func (s *FileSink) WriteManifest(ctx context.Context, manifest *run.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return errors.ExportFailed("manifest.json", err)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.ExportFailed("manifest.json", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return errors.ExportFailed("manifest.json", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, "manifest.json"), data, 0o644); err != nil {
		return errors.ExportFailed("manifest.json", err)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// safeName keeps user supplied names from escaping their folder
func safeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
