package ports

import (
	"context"

	"oncosense/domain/screening"
)

// WorkbookReader provides read-only access to the input workbook
type WorkbookReader interface {
	// ReadMeasurements loads the L sheet with sentinels substituted
	ReadMeasurements(ctx context.Context) (*screening.MeasurementTable, error)
	// ReadEffects loads the G sheet
	ReadEffects(ctx context.Context) (*screening.EffectTable, error)
	// ReadErrorLimit loads the lambda stored in ErrorLimitLambda!A1
	ReadErrorLimit(ctx context.Context) (float64, error)
}

// WorkbookWriter writes derived sheets back into the input workbook
type WorkbookWriter interface {
	// WriteSheet replaces the sheet of the same name, if any
	WriteSheet(ctx context.Context, sheet *screening.Sheet) error
}

// Workbook is a workbook that can be read and written back
type Workbook interface {
	WorkbookReader
	WorkbookWriter
	// Path returns the workbook location; its base name names the output folder
	Path() string
}
