package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/jsontab/jsontab/internal/config"
	"github.com/jsontab/jsontab/internal/errors"
	"github.com/jsontab/jsontab/internal/logger"
	"github.com/jsontab/jsontab/internal/normalizer"
	"github.com/jsontab/jsontab/internal/output"
	"github.com/jsontab/jsontab/internal/parser"
)

// CLI defines the command-line interface. The core run takes no
// arguments: the document comes from stdin and the destination from the
// OUTPUT_DIRECTORY environment variable.
var CLI struct {
	Config  string `help:"Path to config file. If not specified, searches for .jsontab.yml upwards from the working directory." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    logger.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// Exit codes, one per error type in the taxonomy.
const (
	exitOK            = 0
	exitConfiguration = 1
	exitInput         = 2
	exitShape         = 3
	exitOutput        = 4
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsontab"),
		kong.Description("A tool to flatten a JSON document into a CSV table"),
		kong.UsageOnError(),
	)

	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(exitConfiguration)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsontab version %s\n", Version)
		return
	}

	// A .env file may provide OUTPUT_DIRECTORY and the JSONTAB_*
	// variables; real environment variables always win.
	_ = godotenv.Load()

	cfg, err := config.Resolve(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(mapErrorToExitCode(err))
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	log := logger.New(cfg.Debug)
	if cfg.File != "" {
		log.Debug("config file loaded", "path", cfg.File)
	}

	if err := run(&Context{Debug: cfg.Debug, Config: cfg, Log: log}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(mapErrorToExitCode(err))
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the complete JSON document from stdin
	raw, err := readInput()
	if err != nil {
		return err
	}
	ctx.Log.Debug("input read", "bytes", len(raw))

	// 2. Parse into the ordered value tree
	root, err := parser.ParseBytes(raw)
	if err != nil {
		return err
	}

	// 3. Optionally descend to the configured record path
	if path := ctx.Config.RecordPath; path != "" {
		sub, err := parser.SelectPath(raw, path)
		if err != nil {
			return err
		}
		ctx.Log.Debug("record path selected", "path", path, "bytes", len(sub))
		root, err = parser.ParseBytes(sub)
		if err != nil {
			return err
		}
	}

	// 4. Flatten into a table
	norm := normalizer.NewNormalizerWithSeparator(ctx.Config.Separator)
	table, err := norm.Normalize(root)
	if err != nil {
		return err
	}
	ctx.Log.Debug("normalized",
		"rows", len(table.Rows),
		"columns", len(table.Columns),
	)

	// 5. Persist the result
	sink := output.NewSink(ctx.Config, ctx.Log)
	return sink.Write(table)
}

// readInput reads the complete byte content of one JSON document from
// stdin; end of stream signals completion.
func readInput() ([]byte, error) {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	return raw, nil
}

// mapErrorToExitCode translates the error taxonomy into process exit
// codes: configuration 1, input 2, shape 3, output 4.
func mapErrorToExitCode(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeConfiguration:
		return exitConfiguration
	case errors.ErrorTypeInput:
		return exitInput
	case errors.ErrorTypeShape:
		return exitShape
	case errors.ErrorTypeOutput:
		return exitOutput
	default:
		return exitConfiguration
	}
}
