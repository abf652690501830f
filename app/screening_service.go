package app

import (
	"context"
	"fmt"
	"time"

	"oncosense/domain/core"
	"oncosense/domain/run"
	"oncosense/domain/screening"
	"oncosense/internal"
	"oncosense/internal/analysis"
	"oncosense/ports"
)

// pass is one of the four sheets produced per cell line
type pass struct {
	onlyAvg          bool
	controlTreatment bool
}

// passes run in this order; plots are drawn on the first one only
var passes = []pass{
	{onlyAvg: true, controlTreatment: false},
	{onlyAvg: false, controlTreatment: false},
	{onlyAvg: false, controlTreatment: true},
	{onlyAvg: true, controlTreatment: true},
}

// ScreeningService drives the L and G analyses of one workbook
type ScreeningService struct {
	workbook    ports.Workbook
	sink        ports.ArtifactSink
	confirmer   ports.Confirmer
	logger      *internal.Logger
	codeVersion string
}

// AnalyzeLRequest defines the inputs of an L analysis
type AnalyzeLRequest struct {
	Table      *screening.MeasurementTable
	ErrorLimit float64
	Fixed      screening.FixedColumn
	PValue     float64
}

// AnalyzeGRequest defines the inputs of a G analysis
type AnalyzeGRequest struct {
	Effects     *screening.EffectTable
	Important   *screening.MeasurementTable
	EdgePercent float64
}

// Outcome records what an analysis exported and what it had to skip
type Outcome struct {
	CellLines []string
	Sheets    []string
	Skipped   []string
	Effects   []screening.ProcessEffects
}

func (o *Outcome) skip(name string, err error) {
	o.Skipped = append(o.Skipped, fmt.Sprintf("%s: %v", name, err))
}

// NewScreeningService creates a screening service. workbook may be nil when
// no sheet is read or written back.
func NewScreeningService(workbook ports.Workbook, sink ports.ArtifactSink, confirmer ports.Confirmer,
	logger *internal.Logger, codeVersion string) *ScreeningService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ScreeningService{
		workbook:    workbook,
		sink:        sink,
		confirmer:   confirmer,
		logger:      logger.With("screening"),
		codeVersion: codeVersion,
	}
}

// ImportantL keeps the important process columns of table and optionally
// writes them back into the workbook under sheetName.
func (s *ScreeningService) ImportantL(ctx context.Context, table *screening.MeasurementTable, errLimit float64,
	threshold int, sheetName string, writeBack bool) (*screening.MeasurementTable, error) {
	important, err := analysis.ImportantColumns(table, errLimit, threshold)
	if err != nil {
		return nil, err
	}
	s.logger.Info("%d of %d processes are important", len(important.Processes), len(table.Processes))
	if writeBack {
		s.writeBack(ctx, important.Sheet(sheetName))
	}
	return important, nil
}

// Filter keeps the rows whose column value is one of values and optionally
// writes them back into the workbook under sheetName.
func (s *ScreeningService) Filter(ctx context.Context, table *screening.MeasurementTable, column string,
	values []string, sheetName string, writeBack bool) (*screening.MeasurementTable, error) {
	filtered, err := analysis.FilterByColumn(table, column, values)
	if err != nil {
		return nil, err
	}
	if len(filtered.Rows) == 0 {
		s.logger.Info("There is no data to show by '%s' filtering", column)
	}
	if writeBack {
		s.writeBack(ctx, filtered.Sheet(sheetName))
	}
	return filtered, nil
}

func (s *ScreeningService) writeBack(ctx context.Context, sheet *screening.Sheet) {
	if s.workbook == nil {
		s.logger.Warn("no workbook to write '%s' into", sheet.Name)
		return
	}
	s.logger.Info("Creating '%s'..", sheet.Name)
	if err := s.workbook.WriteSheet(ctx, sheet); err != nil {
		s.logger.Error("Error occurred while creating the sheet: %v", err)
	}
}

// AnalyzeL compares every control/treatment pair of every confirmed cell
// line and exports four sheets per cell line. Roles are confirmed once per
// cell line. Export failures are logged and recorded, not returned.
func (s *ScreeningService) AnalyzeL(ctx context.Context, req AnalyzeLRequest) (*Outcome, error) {
	if err := req.Table.Validate(); err != nil {
		return nil, err
	}
	if _, err := screening.ParseFixedColumn(string(req.Fixed)); err != nil {
		return nil, core.NewColumnsError("%v", err)
	}
	if req.PValue <= 0 || req.PValue >= 1 {
		return nil, core.NewNegativeNumberError("p-value", req.PValue)
	}
	if req.ErrorLimit < 0 {
		return nil, core.NewNegativeNumberError("error limit", req.ErrorLimit)
	}

	cellLines, err := s.confirmer.ConfirmCellLines(ctx, req.Table.CellLines())
	if err != nil {
		return nil, err
	}

	engine := analysis.NewEngine(req.PValue, req.ErrorLimit)
	outcome := &Outcome{CellLines: cellLines}
	for _, cellLine := range cellLines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.analyzeCellLine(ctx, engine, req, cellLine, outcome); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

func (s *ScreeningService) analyzeCellLine(ctx context.Context, engine *analysis.Engine, req AnalyzeLRequest,
	cellLine string, outcome *Outcome) error {
	start := time.Now()
	compounds := req.Table.ForCellLine(cellLine).Compounds()
	if len(compounds) == 0 {
		return core.Wrapf(core.ErrInvalidCellLine, "no rows for cell line '%s'", cellLine)
	}
	roles, err := s.confirmer.ConfirmCompoundRoles(ctx, compounds, cellLine)
	if err != nil {
		return err
	}

	for i, p := range passes {
		name := screening.SheetName(cellLine, p.onlyAvg, p.controlTreatment, req.Fixed)
		s.logger.Info("Analyzing '%s'..", name)

		set, err := analysis.BuildPairs(req.Table, cellLine, roles, req.Fixed, p.controlTreatment)
		if err != nil {
			return err
		}
		results := engine.ComparePairs(set, req.Table.Processes)
		if len(results) == 0 {
			s.logger.Info("No interesting data found for '%s'", name)
			continue
		}

		if i == 0 {
			if err := s.sink.WritePlots(ctx, cellLine, req.Fixed, analysis.BuildSeries(results)); err != nil {
				s.logger.Warn("plots for '%s' incomplete: %v", cellLine, err)
				outcome.skip(cellLine+" plots", err)
			}
		}

		sheet := analysis.Assemble(name, req.Fixed, results, p.onlyAvg, p.controlTreatment)
		if err := s.sink.WriteSheet(ctx, cellLine, sheet); err != nil {
			s.logger.Warn("skipping sheet '%s': %v", name, err)
			outcome.skip(name, err)
			continue
		}
		outcome.Sheets = append(outcome.Sheets, name)
	}

	s.logger.Debug("cell line '%s' analyzed in %.2fms", cellLine, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

// AnalyzeG sorts the G scores of every important process, finds the edges
// and exports them.
func (s *ScreeningService) AnalyzeG(ctx context.Context, req AnalyzeGRequest) (*Outcome, error) {
	if req.Important == nil {
		return nil, core.NewDataSetError("important L table is nil")
	}
	effects, err := analysis.SortEffects(req.Effects, req.Important.Processes, req.EdgePercent)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Effects: effects}
	if err := s.sink.WriteEffects(ctx, effects); err != nil {
		s.logger.Warn("G export incomplete: %v", err)
		outcome.skip("G", err)
	}
	return outcome, nil
}

// WriteManifest records the run parameters and outcomes next to the artifacts
func (s *ScreeningService) WriteManifest(ctx context.Context, params run.Parameters, outcomes ...*Outcome) *run.Manifest {
	manifest := run.NewManifest(params, s.codeVersion)
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		if len(o.CellLines) > 0 {
			manifest.Parameters.CellLines = o.CellLines
		}
		manifest.Sheets = append(manifest.Sheets, o.Sheets...)
		manifest.Skipped = append(manifest.Skipped, o.Skipped...)
	}
	manifest.Fingerprint = manifest.Parameters.Fingerprint()

	if err := s.sink.WriteManifest(ctx, manifest); err != nil {
		s.logger.Warn("manifest not written: %v", err)
	}
	return manifest
}
