package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"oncosense/domain/screening"
	"oncosense/internal"
	"oncosense/internal/config"
	"oncosense/ports"
)

// TerminalConfirmer asks for confirmations line by line. A blank answer
// or end of input accepts the proposed default.
type TerminalConfirmer struct {
	in     *bufio.Reader
	out    io.Writer
	logger *internal.Logger
}

var _ ports.Confirmer = (*TerminalConfirmer)(nil)

// NewTerminalConfirmer creates a confirmer reading answers from in
func NewTerminalConfirmer(in io.Reader, out io.Writer, logger *internal.Logger) *TerminalConfirmer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TerminalConfirmer{in: bufio.NewReader(in), out: out, logger: logger.With("prompt")}
}

// ConfirmCellLines lets the user narrow the cell lines to analyze
func (c *TerminalConfirmer) ConfirmCellLines(ctx context.Context, names []string) ([]string, error) {
	if ctx.Err() != nil {
		return names, nil
	}

	fmt.Fprintln(c.out, titleStyle.Render("Cell lines"))
	fmt.Fprintln(c.out, "  "+strings.Join(names, ", "))
	answer, err := c.ask("Cell lines to analyze (comma separated, blank for all): ")
	if err != nil {
		return nil, err
	}

	chosen := c.pick(answer, names)
	if len(chosen) == 0 {
		return names, nil
	}
	return chosen, nil
}

// ConfirmCompoundRoles asks which compounds are controls; every other
// compound is proposed as a treatment.
func (c *TerminalConfirmer) ConfirmCompoundRoles(ctx context.Context, names []string, cellLine string) (screening.Roles, error) {
	defaults := screening.DefaultRoles(names)
	if ctx.Err() != nil {
		return defaults, nil
	}

	fmt.Fprintln(c.out, titleStyle.Render("Compounds of "+cellLine))
	fmt.Fprintln(c.out, "  control:   "+controlStyle.Render(strings.Join(defaults.Control, ", ")))
	fmt.Fprintln(c.out, "  treatment: "+treatStyle.Render(strings.Join(defaults.Treatment, ", ")))

	answer, err := c.ask("Control compounds (comma separated, blank to keep): ")
	if err != nil {
		return screening.Roles{}, err
	}
	control := c.pick(answer, names)
	if len(control) == 0 {
		control = defaults.Control
	}

	remaining := without(names, control)
	answer, err = c.ask(fmt.Sprintf("Treatment compounds [%s]: ", strings.Join(remaining, ", ")))
	if err != nil {
		return screening.Roles{}, err
	}
	treatment := c.pick(answer, remaining)
	if len(treatment) == 0 {
		treatment = remaining
	}

	roles := screening.Roles{Control: control, Treatment: treatment}
	if roles.IsEmpty() {
		return defaults, nil
	}
	return roles, nil
}

// ask prints question and returns the trimmed answer. End of input is a
// blank answer.
func (c *TerminalConfirmer) ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// pick keeps the answered names that are among allowed, in answer order
func (c *TerminalConfirmer) pick(answer string, allowed []string) []string {
	known := make(map[string]bool, len(allowed))
	for _, n := range allowed {
		known[n] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, name := range config.SplitList(answer) {
		if !known[name] {
			c.logger.Warn("ignoring unknown name '%s'", name)
			fmt.Fprintln(c.out, mutedStyle.Render("  unknown: "+name))
			continue
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func without(names, drop []string) []string {
	skip := make(map[string]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		if !skip[n] && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
