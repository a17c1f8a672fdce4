package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lathecam/internal/app"
	"lathecam/internal/config"
)

var (
	// Global flags
	envFile  string
	logLevel string
	quiet    bool
	verbose  bool

	jobPath      string
	saveJob      string
	output       string
	printProgram bool
	readStock    string
	writeRemoved string

	job     config.JobSection
	machine config.MachineSection
	ccw     bool
	diam    bool
)

var rootCmd = &cobra.Command{
	Use:   "lathecam",
	Short: "Generate lathe turning and facing G-code",
	Long: `lathecam turns stock and finish dimensions, depth of cut and feed into a
LinuxCNC lathe program of rapid and feed moves.

Parameters come from flags, from a YAML or TOML job file (--job), or both;
flags given on the command line override the job file, which overrides the
LATHECAM_* environment defaults.

Exit codes:
  0 - program written
  1 - invalid parameters or files
  2 - program written but the operation is not yet available

Examples:
  lathecam -i 25 -f 20 -c 1 -s 0.2 -l 40 -r 100 --rpm 800
  lathecam --operation facing -i 2 -f 0 -c 0.5 -z 30 -l 30 -r 60 -n face.ngc
  lathecam --job part.yaml --write-removed part-removed.stl`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runGenerate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "file of environment defaults")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off); default from LATHECAM_LOG_LEVEL")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show underlying errors")
	pf.StringVar(&saveJob, "save-job", "", "write the effective parameters to a YAML or TOML job file")
	pf.StringVarP(&output, "file-name", "n", "", "file for the program, - for stdout; default from LATHECAM_OUTPUT")
	pf.BoolVar(&printProgram, "print", false, "also print the program to stdout")
	pf.StringVar(&readStock, "read-stock", "", "take the start depth from an STL mesh of the stock")
	pf.StringVar(&writeRemoved, "write-removed", "", "write the material removed by the job as an STL file")

	f := rootCmd.Flags()
	f.StringVar(&jobPath, "job", "", "YAML or TOML job file")
	f.StringVar(&job.Operation, "operation", "turning", "operation: turning, facing, faceboring, boring, drilling")
	f.Float64VarP(&job.StartDepth, "initial-od", "i", 0, "initial outside dimension")
	f.Float64VarP(&job.FinishDepth, "final-od", "f", 0, "final outside dimension")
	f.Float64VarP(&job.Step, "cut-depth", "c", 0, "roughing depth of cut")
	f.Float64VarP(&job.FinishStep, "finish-cut-depth", "s", 0, "finishing depth of cut")
	f.Float64VarP(&job.StartCut, "z-begin", "z", 0, "position the cut begins at")
	f.Float64VarP(&job.Length, "length", "l", 0, "signed length of cut; negative cuts away from the chuck")
	f.Float64VarP(&job.Feed, "feed-rate", "r", 0, "feed rate")
	f.Float64VarP(&job.Clearance, "clearance", "g", 0, "clearance for tool travel between passes; default from LATHECAM_CLEARANCE")
	f.IntVar(&machine.RPM, "rpm", 0, "spindle RPM")
	f.BoolVar(&ccw, "ccw", false, "counter clockwise spindle (M4); default is M3")
	f.BoolVar(&machine.Inch, "inch", false, "inch units (G20); default is mm (G21)")
	f.BoolVar(&diam, "diameter", false, "diameter mode (G7); default is radius mode (G8)")
	f.IntVarP(&machine.Tool, "tool", "t", 0, "tool number")

	_ = rootCmd.RegisterFlagCompletionFunc("operation", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"turning", "facing", "faceboring", "boring", "drilling"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("job", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(versionCmd)
}

// setup loads the environment defaults and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, &config.UserError{Code: config.ErrCodeJobParse, Message: "cannot read environment file", Context: envFile, Underlying: err}
	}
	cfg := config.Load()

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if quiet {
		level = "error"
	}

	if output == "" {
		output = cfg.Output
	}

	return cfg, config.NewLogger(level, cmd.ErrOrStderr()), nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	jf := cfg.Defaults()
	if jobPath != "" {
		if err := config.ReadJobFile(jobPath, jf); err != nil {
			return err
		}
	}
	applyFlags(cmd.Flags(), jf)

	_, err = app.New(log, cmd.OutOrStdout()).Run(jf, runOptions())
	return err
}

// applyFlags copies only the flags given on the command line, so a job file
// keeps every value the user did not override.
func applyFlags(flags *pflag.FlagSet, jf *config.JobFile) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "operation":
			jf.Job.Operation = job.Operation
		case "initial-od":
			jf.Job.StartDepth = job.StartDepth
		case "final-od":
			jf.Job.FinishDepth = job.FinishDepth
		case "cut-depth":
			jf.Job.Step = job.Step
		case "finish-cut-depth":
			jf.Job.FinishStep = job.FinishStep
		case "z-begin":
			jf.Job.StartCut = job.StartCut
		case "length":
			jf.Job.Length = job.Length
		case "feed-rate":
			jf.Job.Feed = job.Feed
		case "clearance":
			jf.Job.Clearance = job.Clearance
		case "rpm":
			jf.Machine.RPM = machine.RPM
		case "ccw":
			jf.Machine.SpindleCW = !ccw
		case "inch":
			jf.Machine.Inch = machine.Inch
		case "diameter":
			jf.Machine.RadiusMode = !diam
		case "tool":
			jf.Machine.Tool = machine.Tool
		}
	})
}

func runOptions() app.Options {
	return app.Options{
		Output:       output,
		Print:        printProgram,
		ReadStock:    readStock,
		WriteRemoved: writeRemoved,
		SaveJob:      saveJob,
	}
}

func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

func printError(err error) {
	printErrorTo(os.Stderr, err)
}

func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
