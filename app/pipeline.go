package app

import (
	"context"

	"oncosense/domain/run"
	"oncosense/domain/screening"
)

// ColumnFilter restricts L rows to the given values of one fixed column
type ColumnFilter struct {
	Column string
	Values []string
}

// RunRequest configures a full workbook run
type RunRequest struct {
	Dataset             string
	Fixed               screening.FixedColumn
	PValue              float64
	EdgePercent         float64
	ImportanceThreshold int
	// ErrorLimitOverride replaces the workbook lambda when set
	ErrorLimitOverride  *float64
	ImportantSheetName  string
	WriteImportantSheet bool
	Filters             []ColumnFilter
	SkipG               bool
	SkipL               bool
}

// Run loads the workbook, keeps the important processes, applies the
// filters, then analyzes G and L and writes the run manifest.
func (s *ScreeningService) Run(ctx context.Context, req RunRequest) (*run.Manifest, error) {
	l, err := s.workbook.ReadMeasurements(ctx)
	if err != nil {
		return nil, err
	}
	lambda, err := s.errorLimit(ctx, req.ErrorLimitOverride)
	if err != nil {
		return nil, err
	}

	important, err := s.ImportantL(ctx, l, lambda, req.ImportanceThreshold, req.ImportantSheetName, req.WriteImportantSheet)
	if err != nil {
		return nil, err
	}
	for _, f := range req.Filters {
		if important, err = s.Filter(ctx, important, f.Column, f.Values, "filter_by_col", false); err != nil {
			return nil, err
		}
	}

	params := run.Parameters{
		Dataset:             req.Dataset,
		FixedColumn:         string(req.Fixed),
		PValue:              req.PValue,
		ErrorLimitLambda:    lambda,
		ImportanceThreshold: req.ImportanceThreshold,
		EdgePercent:         req.EdgePercent,
		Processes:           important.Processes,
	}

	var outcomes []*Outcome
	if !req.SkipG {
		g, err := s.workbook.ReadEffects(ctx)
		if err != nil {
			return nil, err
		}
		out, err := s.AnalyzeG(ctx, AnalyzeGRequest{Effects: g, Important: important, EdgePercent: req.EdgePercent})
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
	}
	if !req.SkipL {
		out, err := s.AnalyzeL(ctx, AnalyzeLRequest{Table: important, ErrorLimit: lambda, Fixed: req.Fixed, PValue: req.PValue})
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
	}

	return s.WriteManifest(ctx, params, outcomes...), nil
}

// errorLimit returns the override when set, else the workbook lambda
func (s *ScreeningService) errorLimit(ctx context.Context, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}
	return s.workbook.ReadErrorLimit(ctx)
}

// LoadInputs reads the L table and the error limit, for commands that run
// a single analysis
func (s *ScreeningService) LoadInputs(ctx context.Context, override *float64) (*screening.MeasurementTable, float64, error) {
	l, err := s.workbook.ReadMeasurements(ctx)
	if err != nil {
		return nil, 0, err
	}
	lambda, err := s.errorLimit(ctx, override)
	if err != nil {
		return nil, 0, err
	}
	return l, lambda, nil
}
