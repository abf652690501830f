package testkit

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"oncosense/domain/run"
	"oncosense/domain/screening"
	"oncosense/ports"
)

// TestKit provides testing utilities and fixtures: a generated workbook on
// disk, the tables it was written from and an output directory.
type TestKit struct {
	Generator    *ScreeningGenerator
	Measurements *screening.MeasurementTable
	Effects      *screening.EffectTable
	Lambda       float64
	WorkbookPath string
	SaveRoot     string
}

// NewTestKit writes a workbook generated from config into dir
func NewTestKit(dir string, config ScreeningGeneratorConfig) (*TestKit, error) {
	gen := NewScreeningGenerator(config)
	kit := &TestKit{
		Generator:    gen,
		Measurements: gen.Measurements(),
		Effects:      gen.Effects(),
		Lambda:       config.Effect / 4,
		WorkbookPath: filepath.Join(dir, "screen.xlsx"),
		SaveRoot:     filepath.Join(dir, "out"),
	}
	if err := os.MkdirAll(kit.SaveRoot, 0o755); err != nil {
		return nil, err
	}
	if err := WriteWorkbook(kit.WorkbookPath, kit.Measurements, kit.Effects, kit.Lambda); err != nil {
		return nil, err
	}
	return kit, nil
}

// PlotCall records one WritePlots call
type PlotCall struct {
	CellLine string
	Fixed    screening.FixedColumn
	Series   []screening.PairSeries
}

// InMemorySink records artifacts instead of writing files
type InMemorySink struct {
	mu        sync.Mutex
	Sheets    map[string]*screening.Sheet // by cell line + "/" + sheet name
	Plots     []PlotCall
	Effects   []screening.ProcessEffects
	Manifests []*run.Manifest

	// FailSheets makes WriteSheet fail for these sheet names
	FailSheets map[string]error
}

var _ ports.ArtifactSink = (*InMemorySink)(nil)

// NewInMemorySink creates an empty sink
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{Sheets: make(map[string]*screening.Sheet), FailSheets: make(map[string]error)}
}

func (s *InMemorySink) WriteSheet(ctx context.Context, cellLine string, sheet *screening.Sheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailSheets[sheet.Name]; err != nil {
		return err
	}
	s.Sheets[cellLine+"/"+sheet.Name] = sheet
	return nil
}

func (s *InMemorySink) WritePlots(ctx context.Context, cellLine string, fixed screening.FixedColumn, series []screening.PairSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Plots = append(s.Plots, PlotCall{CellLine: cellLine, Fixed: fixed, Series: series})
	return nil
}

func (s *InMemorySink) WriteEffects(ctx context.Context, effects []screening.ProcessEffects) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Effects = effects
	return nil
}

func (s *InMemorySink) WriteManifest(ctx context.Context, manifest *run.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Manifests = append(s.Manifests, manifest)
	return nil
}

// SheetNames returns the recorded sheet keys
func (s *InMemorySink) SheetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.Sheets))
	for k := range s.Sheets {
		names = append(names, k)
	}
	return names
}
