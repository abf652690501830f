package export

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"oncosense/domain/screening"
	"oncosense/internal/errors"
)

const (
	// maxScatterTicks bounds the labelled UIDs on a G scatter plot
	maxScatterTicks = 200
	maxScatterWidth = 16384
)

// EffectsDir returns the G output folder
func (s *FileSink) EffectsDir() string {
	return filepath.Join(s.root, "G")
}

// WriteEffects writes G/sort_G.csv and G/edges.csv, each with a UID and an
// Effect column per process, and one scatter plot per process with the
// edges in red.
func (s *FileSink) WriteEffects(ctx context.Context, effects []screening.ProcessEffects) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([][]screening.Edge, len(effects))
	edges := make([][]screening.Edge, len(effects))
	for i, pe := range effects {
		sorted[i] = pe.Sorted
		edges[i] = pe.Edges()
	}
	if err := writeCSV(filepath.Join(s.EffectsDir(), "sort_G.csv"), effectColumns(effects, sorted)); err != nil {
		return errors.ExportFailed("sort_G.csv", err)
	}
	if err := writeCSV(filepath.Join(s.EffectsDir(), "edges.csv"), effectColumns(effects, edges)); err != nil {
		return errors.ExportFailed("edges.csv", err)
	}

	var failed []error
	for _, pe := range effects {
		title := "Process " + pe.Process
		path := filepath.Join(s.EffectsDir(), "Graphs", safeName(title)+".SVG")
		if len(pe.Sorted) < 2 {
			s.logger.Warn("skipping plot '%s': fewer than two proteins", title)
			continue
		}
		if err := s.render(path, func() ([]byte, error) { return renderEffects(title, pe) }); err != nil {
			failed = append(failed, err)
			continue
		}
		s.logger.Info("The SVG file '%s' saved successfully", title)
	}
	return goerrors.Join(failed...)
}

// effectColumns lays out one UID and one Effect column per process.
// Shorter columns are padded with blanks.
func effectColumns(effects []screening.ProcessEffects, columns [][]screening.Edge) [][]string {
	header := make([]string, 0, 2*len(effects))
	longest := 0
	for i, pe := range effects {
		header = append(header, pe.Process+" UID", pe.Process+" Effect")
		if len(columns[i]) > longest {
			longest = len(columns[i])
		}
	}

	rows := [][]string{header}
	for r := 0; r < longest; r++ {
		row := make([]string, 0, len(header))
		for _, col := range columns {
			if r < len(col) {
				row = append(row, col[r].UID, strconv.FormatFloat(col[r].Score, 'g', -1, 64))
			} else {
				row = append(row, "", "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// renderEffects draws the sorted scores of one process as an SVG scatter
func renderEffects(title string, pe screening.ProcessEffects) ([]byte, error) {
	n := len(pe.Sorted)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, e := range pe.Sorted {
		xs[i] = float64(i)
		ys[i] = e.Score
	}

	lo, hi, err := valueRange(ys)
	if err != nil {
		return nil, err
	}

	xAxis := chart.XAxis{Name: "UID"}
	if n <= maxScatterTicks {
		for i, e := range pe.Sorted {
			xAxis.Ticks = append(xAxis.Ticks, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%s (%d)", e.UID, i)})
		}
		xAxis.TickStyle = chart.Style{TextRotationDegrees: 90, FontSize: 6}
	}

	series := []chart.Series{
		chart.ContinuousSeries{Name: "effect", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorBlue, 3)},
	}
	if len(pe.Lower) > 0 && len(pe.Upper) > 0 {
		var ex, ey []float64
		for i := range pe.Lower {
			ex = append(ex, float64(i))
			ey = append(ey, pe.Lower[i].Score)
		}
		for i := range pe.Upper {
			ex = append(ex, float64(n-len(pe.Upper)+i))
			ey = append(ey, pe.Upper[i].Score)
		}
		series = append(series, chart.ContinuousSeries{Name: "edges", XValues: ex, YValues: ey, Style: pointStyle(drawing.ColorRed, 4)})
	}

	width := plotWidth
	if w := 8 * n; w > width {
		width = w
	}
	if width > maxScatterWidth {
		width = maxScatterWidth
	}
	graph := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: "Effect", Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series:     series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pointStyle renders points only, no connecting line
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}
