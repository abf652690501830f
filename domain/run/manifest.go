package run

import "fmt"

// Parameters captures every input that shapes the outputs of an analysis run
type Parameters struct {
	Dataset             string   `json:"dataset"`
	FixedColumn         string   `json:"fixed_column"`
	PValue              float64  `json:"p_value"`
	ErrorLimitLambda    float64  `json:"error_limit_lambda"`
	ImportanceThreshold int      `json:"importance_threshold"`
	EdgePercent         float64  `json:"edge_percent"`
	Processes           []string `json:"processes"`
	CellLines           []string `json:"cell_lines"`
}

// Fingerprint hashes the parameters. Two runs with equal fingerprints
// produce identical tables from the same workbook.
func (p Parameters) Fingerprint() Fingerprint {
	return fingerprintOf(p)
}

// Manifest records one analysis run next to its artifacts
type Manifest struct {
	RunID       ID          `json:"run_id"`
	Parameters  Parameters  `json:"parameters"`
	Fingerprint Fingerprint `json:"fingerprint"`
	CodeVersion string      `json:"code_version"`
	Sheets      []string    `json:"sheets"`
	Skipped     []string    `json:"skipped,omitempty"`
	CreatedAt   Timestamp   `json:"created_at"`
}

// NewManifest creates a manifest for a fresh run
func NewManifest(params Parameters, codeVersion string) *Manifest {
	return &Manifest{
		RunID:       NewID(),
		Parameters:  params,
		Fingerprint: params.Fingerprint(),
		CodeVersion: codeVersion,
		CreatedAt:   Now(),
	}
}

// AddSheet records an exported sheet
func (m *Manifest) AddSheet(name string) {
	m.Sheets = append(m.Sheets, name)
}

// AddSkipped records an artifact that could not be written
func (m *Manifest) AddSkipped(name string, err error) {
	m.Skipped = append(m.Skipped, fmt.Sprintf("%s: %v", name, err))
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if m.RunID == "" {
		return fmt.Errorf("run manifest: run_id cannot be empty")
	}
	if m.Parameters.Dataset == "" {
		return fmt.Errorf("run manifest: dataset cannot be empty")
	}
	if m.CodeVersion == "" {
		return fmt.Errorf("run manifest: code_version cannot be empty")
	}
	return nil
}
