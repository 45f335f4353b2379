package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/noma/internal/app"
)

// Version is reported by -version. It is overridden at link time.
var Version = "dev"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("noma", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
noma - compile and evaluate scalar computational graphs.

Usage:
  noma [options] [PROGRAM_PATH...]

Arguments:
  PROGRAM_PATH
    Path to a program file or a directory containing .noma.hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	programFlag := flagSet.String("program", "", "Path to the program file or directory.")
	pFlag := flagSet.String("p", "", "Path to the program file or directory (shorthand).")
	graphFlag := flagSet.Bool("graph", false, "Print the node table of every function.")
	astFlag := flagSet.Bool("ast", false, "Print the statements of every function.")
	checkFlag := flagSet.Bool("check", false, "Build the graphs without running the forward pass.")
	versionFlag := flagSet.Bool("version", false, "Print the version and exit.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of functions processed concurrently. 0 uses every CPU.")
	metricsFileFlag := flagSet.String("metrics-file", "", "Write Prometheus metrics in textfile format to this path.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		fmt.Fprintf(output, "noma %s\n", Version)
		return nil, true, nil
	}

	var paths []string
	if *programFlag != "" {
		paths = append(paths, *programFlag)
	}
	if *pFlag != "" {
		paths = append(paths, *pFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Program paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No program path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid workers: must be 0 or greater"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProgramPaths:    paths,
		DumpGraph:       *graphFlag,
		PrintAST:        *astFlag,
		CheckOnly:       *checkFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		WorkerCount:     *workersFlag,
		MetricsFile:     *metricsFileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
