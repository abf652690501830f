package ports

import (
	"context"

	"oncosense/domain/run"
	"oncosense/domain/screening"
)

// ArtifactSink persists the outputs of an analysis run under one dataset
// folder. Implementations create directories as needed.
type ArtifactSink interface {
	// L outputs, one folder per cell line
	WriteSheet(ctx context.Context, cellLine string, sheet *screening.Sheet) error
	WritePlots(ctx context.Context, cellLine string, fixed screening.FixedColumn, series []screening.PairSeries) error

	// G outputs
	WriteEffects(ctx context.Context, effects []screening.ProcessEffects) error

	WriteManifest(ctx context.Context, manifest *run.Manifest) error
}
