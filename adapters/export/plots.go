package export

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"path/filepath"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"oncosense/domain/screening"
	"oncosense/internal/errors"
)

const (
	plotWidth  = 1024
	plotHeight = 512
	// yPadding keeps the extreme points off the plot border
	yPadding = 0.5
)

// WritePlots renders a bar chart and, for processes with two or more
// points, a line chart per process of every plottable pair. Failed plots
// are logged and skipped; their errors are returned joined.
func (s *FileSink) WritePlots(ctx context.Context, cellLine string, fixed screening.FixedColumn, series []screening.PairSeries) error {
	if len(series) == 0 {
		s.logger.Info("There is not enough data for creating graphs")
		return nil
	}

	var failed []error
	for _, pair := range series {
		if err := ctx.Err(); err != nil {
			return err
		}
		folder := safeName(pair.Pair.String())
		s.logger.Info("Start creating plots for %s(%s)..", cellLine, pair.Pair)

		for _, ps := range pair.Series {
			file := fmt.Sprintf("Process %s - by %s.png", safeName(ps.Process), fixed)
			title := fmt.Sprintf("%s %s - PROCESS %s", pair.Pair.Control, pair.Pair.Treatment, ps.Process)

			barPath := filepath.Join(s.CellLineDir(cellLine), "Bars", folder, file)
			if err := s.render(barPath, func() ([]byte, error) { return renderBars(title, pair.Pair, ps) }); err != nil {
				failed = append(failed, err)
			}
			if len(ps.Labels) < 2 {
				continue
			}
			graphPath := filepath.Join(s.CellLineDir(cellLine), "Graphs", folder, file)
			if err := s.render(graphPath, func() ([]byte, error) { return renderLines(title, string(fixed), pair.Pair, ps) }); err != nil {
				failed = append(failed, err)
			}
		}
	}
	return goerrors.Join(failed...)
}

func (s *FileSink) render(path string, draw func() ([]byte, error)) error {
	data, err := draw()
	if err == nil {
		err = writeFile(path, data)
	}
	if err != nil {
		s.logger.Warn("skipping plot %s: %v", path, err)
		return errors.ExportFailed(filepath.Base(path), err)
	}
	s.logger.Debug("plot %s saved", path)
	return nil
}

// renderBars draws control and treatment bars side by side at every point
func renderBars(title string, pair screening.CompoundPair, ps screening.ProcessSeries) ([]byte, error) {
	bars := make([]chart.Value, 0, 2*len(ps.Labels))
	for i, label := range ps.Labels {
		bars = append(bars,
			chart.Value{
				Label: label + " " + pair.Control,
				Value: ps.Control[i],
				Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
			},
			chart.Value{
				Label: label + " " + pair.Treatment,
				Value: ps.Treatment[i],
				Style: chart.Style{FillColor: chart.ColorOrange, StrokeColor: chart.ColorOrange},
			},
		)
	}

	lo, hi, err := valueRange(append(append([]float64{0}, ps.Control...), ps.Treatment...))
	if err != nil {
		return nil, err
	}
	graph := chart.BarChart{
		Title:        title,
		Width:        plotWidth,
		Height:       plotHeight,
		BarWidth:     40,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:        chart.YAxis{Name: "values", Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderLines draws both arms as lines along the fixed axis
func renderLines(title, xName string, pair screening.CompoundPair, ps screening.ProcessSeries) ([]byte, error) {
	xs := make([]float64, len(ps.Labels))
	ticks := make([]chart.Tick, len(ps.Labels))
	for i, label := range ps.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	lo, hi, err := valueRange(append(append([]float64(nil), ps.Control...), ps.Treatment...))
	if err != nil {
		return nil, err
	}
	graph := chart.Chart{
		Title:      title,
		Width:      plotWidth,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName, Ticks: ticks},
		YAxis:      chart.YAxis{Name: "values", Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: pair.Control, XValues: xs, YValues: ps.Control, Style: lineStyle(chart.ColorBlue)},
			chart.ContinuousSeries{Name: pair.Treatment, XValues: xs, YValues: ps.Treatment, Style: lineStyle(chart.ColorOrange)},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 4}
}

// valueRange returns the padded min and max of values
func valueRange(values []float64) (float64, float64, error) {
	lo, err := stats.Min(values)
	if err != nil {
		return 0, 0, err
	}
	hi, err := stats.Max(values)
	if err != nil {
		return 0, 0, err
	}
	return lo - yPadding, hi + yPadding, nil
}
