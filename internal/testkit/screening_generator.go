package testkit

import (
	"fmt"
	"math/rand"
	"strconv"

	"oncosense/domain/screening"
)

// ScreeningGeneratorConfig configures the synthetic screening data generator
type ScreeningGeneratorConfig struct {
	CellLines  []string `json:"cell_lines"`
	Controls   []string `json:"controls"`
	Treatments []string `json:"treatments"`
	Dosages    []string `json:"dosages"`
	Times      []string `json:"times"`
	Replicates int      `json:"replicates"`
	Processes  int      `json:"processes"`
	Proteins   int      `json:"proteins"`
	// Effect is the shift added to treatment rows of the responsive
	// processes (every odd-numbered process)
	Effect float64 `json:"effect"`
	Noise  float64 `json:"noise"`
	Seed   int64   `json:"seed"`
}

// DefaultScreeningConfig returns a small, fully crossed screening design
func DefaultScreeningConfig() ScreeningGeneratorConfig {
	return ScreeningGeneratorConfig{
		CellLines:  []string{"A549", "HeLa"},
		Controls:   []string{"CONTROL"},
		Treatments: []string{"DrugX"},
		Dosages:    []string{"40nM"},
		Times:      []string{"2hr", "24hr", "48hr"},
		Replicates: 3,
		Processes:  4,
		Proteins:   20,
		Effect:     2,
		Noise:      0.05,
		Seed:       42,
	}
}

// ScreeningGenerator produces L and G tables with a known signal
type ScreeningGenerator struct {
	config ScreeningGeneratorConfig
	rng    *rand.Rand
}

// NewScreeningGenerator creates a generator seeded from config
func NewScreeningGenerator(config ScreeningGeneratorConfig) *ScreeningGenerator {
	return &ScreeningGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// ProcessNames returns "1".."n"
func (g *ScreeningGenerator) ProcessNames() []string {
	names := make([]string, g.config.Processes)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	return names
}

// Responsive reports whether the generator shifts treatment values of a process
func (g *ScreeningGenerator) Responsive(process string) bool {
	n, err := strconv.Atoi(process)
	return err == nil && n%2 == 1
}

// Measurements generates the L table. Controls are measured without a
// dosage at every time point; treatments at every dosage and time point.
func (g *ScreeningGenerator) Measurements() *screening.MeasurementTable {
	processes := g.ProcessNames()
	table := &screening.MeasurementTable{Processes: processes}
	barcode := 0

	add := func(cellLine, compound, dosage, time string, treated bool) {
		for r := 0; r < g.config.Replicates; r++ {
			barcode++
			values := make(map[string]float64, len(processes))
			for _, p := range processes {
				v := g.rng.NormFloat64() * g.config.Noise
				if treated && g.Responsive(p) {
					v += g.config.Effect
				}
				values[p] = v
			}
			table.Rows = append(table.Rows, screening.Measurement{
				Barcode:  fmt.Sprintf("BC%05d", barcode),
				CellLine: cellLine,
				Compound: compound,
				Form:     "2D",
				Dosage:   dosage,
				Time:     time,
				Values:   values,
			})
		}
	}

	for _, cellLine := range g.config.CellLines {
		for _, time := range g.config.Times {
			for _, control := range g.config.Controls {
				add(cellLine, control, screening.SentinelDosage, time, false)
			}
			for _, treatment := range g.config.Treatments {
				for _, dosage := range g.config.Dosages {
					add(cellLine, treatment, dosage, time, true)
				}
			}
		}
	}
	return table
}

// Effects generates the G table: one standard normal score per protein and process
func (g *ScreeningGenerator) Effects() *screening.EffectTable {
	processes := g.ProcessNames()
	table := &screening.EffectTable{Processes: processes, Values: make(map[string][]float64, len(processes))}
	for i := 0; i < g.config.Proteins; i++ {
		table.UIDs = append(table.UIDs, fmt.Sprintf("P%05d", i+1))
	}
	for _, p := range processes {
		scores := make([]float64, g.config.Proteins)
		for i := range scores {
			scores[i] = g.rng.NormFloat64()
		}
		table.Values[p] = scores
	}
	return table
}
