package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"oncosense/adapters/excel"
	"oncosense/adapters/export"
	"oncosense/adapters/prompt"
	"oncosense/app"
	"oncosense/domain/screening"
	"oncosense/internal"
	"oncosense/internal/config"
	"oncosense/internal/errors"
	"oncosense/ports"
)

// version is stamped into every run manifest
var version = "dev"

// options holds the flags shared by every command
type options struct {
	dataset        string
	saveRoot       string
	fixed          string
	pValue         float64
	edgePercent    float64
	threshold      int
	errorLimit     float64
	interactive    bool
	cellLines      string
	controls       string
	treatments     string
	writeImportant bool
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "oncosense",
		Short:         "Exploratory statistics for compound screening workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataset, "dataset", "", "Path of the screening workbook (DATASET_PATH)")
	flags.StringVar(&opts.saveRoot, "save-root", "", "Directory artifacts are written under (SAVE_ROOT)")
	flags.StringVar(&opts.fixed, "fixed", "", "Fixed column: time|dosage (FIXED_COLUMN)")
	flags.Float64Var(&opts.pValue, "p-value", 0, "Significance level (P_VALUE)")
	flags.Float64Var(&opts.edgePercent, "edge-percent", 0, "Fraction of G proteins per edge (EDGE_PERCENT)")
	flags.IntVar(&opts.threshold, "threshold", 0, "Minimum count of values above the error limit (IMPORTANCE_THRESHOLD)")
	flags.Float64Var(&opts.errorLimit, "error-limit", 0, "Override the workbook ErrorLimitLambda (ERROR_LIMIT_LAMBDA)")
	flags.BoolVar(&opts.interactive, "interactive", false, "Confirm cell lines and compound roles on the terminal (INTERACTIVE)")
	flags.StringVar(&opts.cellLines, "cell-lines", "", "Comma separated cell lines to analyze (CELL_LINES)")
	flags.StringVar(&opts.controls, "controls", "", "Comma separated control compounds (CONTROL_COMPOUNDS)")
	flags.StringVar(&opts.treatments, "treatments", "", "Comma separated treatment compounds (TREATMENT_COMPOUNDS)")
	flags.BoolVar(&opts.writeImportant, "write-important", false, "Write important_L back into the workbook (WRITE_IMPORTANT_SHEET)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newAnalyzeLCmd(opts),
		newAnalyzeGCmd(opts),
		newImportantCmd(opts),
		newFilterCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		err = errors.Classify(err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", errors.GetCode(err), err)
		os.Exit(errors.ExitCode(err))
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var filters []string
	var skipG, skipL bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run important_L, the filters, analyze G and analyze L",
		Long: `Run the full workbook analysis.

Filters take the form column=value1,value2 and may be repeated.

Example: oncosense run --dataset screen.xlsx --fixed time --filter time=2hr,24hr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}
			return runPipeline(cmd, opts, func(req *app.RunRequest) {
				req.Filters = parsed
				req.SkipG = skipG
				req.SkipL = skipL
			})
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Keep rows whose column matches, as column=v1,v2")
	cmd.Flags().BoolVar(&skipG, "skip-g", false, "Skip the G analysis")
	cmd.Flags().BoolVar(&skipL, "skip-l", false, "Skip the L analysis")
	return cmd
}

func newAnalyzeLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-l",
		Short: "Compare controls and treatments of the important L processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, func(req *app.RunRequest) { req.SkipG = true })
		},
	}
}

func newAnalyzeGCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-g",
		Short: "Sort G effects of the important processes and export their edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, func(req *app.RunRequest) { req.SkipL = true })
		},
	}
}

func newImportantCmd(opts *options) *cobra.Command {
	var sheetName string

	cmd := &cobra.Command{
		Use:   "important",
		Short: "Write the important L processes into a new workbook sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if sheetName == "" {
				sheetName = env.cfg.Data.ImportantSheetName
			}
			ctx := contextOf(cmd)
			l, lambda, err := env.service.LoadInputs(ctx, env.cfg.Analysis.ErrorLimitOverride)
			if err != nil {
				return err
			}
			_, err = env.service.ImportantL(ctx, l, lambda, env.cfg.Analysis.ImportanceThreshold, sheetName, true)
			return err
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Name of the sheet to create (IMPORTANT_SHEET_NAME)")
	return cmd
}

func newFilterCmd(opts *options) *cobra.Command {
	var sheetName string

	cmd := &cobra.Command{
		Use:   "filter [column] [values...]",
		Short: "Write the L rows matching column values into a new workbook sheet",
		Long: `Keep the L rows whose column is one of the given values.

Example: oncosense filter time 2hr 24hr --dataset screen.xlsx`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			ctx := contextOf(cmd)
			l, _, err := env.service.LoadInputs(ctx, ptr(0))
			if err != nil {
				return err
			}
			_, err = env.service.Filter(ctx, l, args[0], args[1:], sheetName, true)
			return err
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "filter_by_col", "Name of the sheet to create")
	return cmd
}

type environment struct {
	cfg     *config.Config
	logger  *internal.Logger
	service *app.ScreeningService
}

// setup loads configuration, applies the flags set on the command line and
// wires the workbook, the sink and the confirmer into a service
func setup(cmd *cobra.Command, opts *options) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Data.DatasetPath == "" {
		return nil, errors.InvalidInput("a dataset is required (--dataset or DATASET_PATH)")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	workbook, err := excel.Open(cfg.Data.DatasetPath, logger)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open dataset")
	}
	if err := os.MkdirAll(cfg.Data.SaveRoot, 0o755); err != nil {
		return nil, errors.ExportFailed(cfg.Data.SaveRoot, err)
	}
	sink, err := export.NewFileSink(cfg.Data.SaveRoot, cfg.Data.DatasetPath, logger)
	if err != nil {
		return nil, errors.Wrap(err, "invalid save root")
	}

	return &environment{
		cfg:     cfg,
		logger:  logger,
		service: app.NewScreeningService(workbook, sink, newConfirmer(cfg, logger), logger, version),
	}, nil
}

func newConfirmer(cfg *config.Config, logger *internal.Logger) ports.Confirmer {
	if cfg.Interaction.Interactive {
		return prompt.NewTerminalConfirmer(os.Stdin, os.Stdout, logger)
	}
	return &prompt.PresetConfirmer{
		CellLines:  cfg.Interaction.CellLines,
		Controls:   cfg.Interaction.ControlCompounds,
		Treatments: cfg.Interaction.TreatmentCompounds,
	}
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("dataset") {
		cfg.Data.DatasetPath = opts.dataset
	}
	if changed("save-root") {
		cfg.Data.SaveRoot = opts.saveRoot
	}
	if changed("write-important") {
		cfg.Data.WriteImportantSheet = opts.writeImportant
	}
	if changed("fixed") {
		cfg.Analysis.FixedColumn = opts.fixed
	}
	if changed("p-value") {
		cfg.Analysis.PValue = opts.pValue
	}
	if changed("edge-percent") {
		cfg.Analysis.EdgePercent = opts.edgePercent
	}
	if changed("threshold") {
		cfg.Analysis.ImportanceThreshold = opts.threshold
	}
	if changed("error-limit") {
		cfg.Analysis.ErrorLimitOverride = ptr(opts.errorLimit)
	}
	if changed("interactive") {
		cfg.Interaction.Interactive = opts.interactive
	}
	if changed("cell-lines") {
		cfg.Interaction.CellLines = config.SplitList(opts.cellLines)
	}
	if changed("controls") {
		cfg.Interaction.ControlCompounds = config.SplitList(opts.controls)
	}
	if changed("treatments") {
		cfg.Interaction.TreatmentCompounds = config.SplitList(opts.treatments)
	}
}

func runPipeline(cmd *cobra.Command, opts *options, customize func(*app.RunRequest)) error {
	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	req := app.RunRequest{
		Dataset:             export.DatasetName(env.cfg.Data.DatasetPath),
		Fixed:               screening.FixedColumn(env.cfg.Analysis.FixedColumn),
		PValue:              env.cfg.Analysis.PValue,
		EdgePercent:         env.cfg.Analysis.EdgePercent,
		ImportanceThreshold: env.cfg.Analysis.ImportanceThreshold,
		ErrorLimitOverride:  env.cfg.Analysis.ErrorLimitOverride,
		ImportantSheetName:  env.cfg.Data.ImportantSheetName,
		WriteImportantSheet: env.cfg.Data.WriteImportantSheet,
	}
	customize(&req)

	manifest, err := env.service.Run(contextOf(cmd), req)
	if err != nil {
		return err
	}
	env.logger.Info("run %s finished: %d sheets, %d skipped", manifest.RunID, len(manifest.Sheets), len(manifest.Skipped))
	return nil
}

// parseFilters turns column=v1,v2 arguments into column filters
func parseFilters(args []string) ([]app.ColumnFilter, error) {
	var filters []app.ColumnFilter
	for _, arg := range args {
		column, values, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("filter %q is not column=values", arg))
		}
		filters = append(filters, app.ColumnFilter{Column: strings.TrimSpace(column), Values: config.SplitList(values)})
	}
	return filters, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func ptr(v float64) *float64 { return &v }
