package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/go-logr/stdr"
	"gopkg.in/yaml.v3"

	"github.com/graphprint/graphprint/internal/loader"
	log "github.com/graphprint/graphprint/internal/log"
	"github.com/graphprint/graphprint/internal/printer"
	"github.com/graphprint/graphprint/internal/schema"
)

const rootUsage = `graphprint prints GraphQL schemas as canonical SDL.

USAGE:
  graphprint <command> [flags]

COMMANDS:
  print                 Print a schema as canonical SDL
  print-introspection   Print the introspection meta-schema as SDL
  batch                 Run print jobs from a YAML config
  help                  Show help for any command
`

const printUsage = `print FLAGS:
  -schema <file>         GraphQL SDL input. Repeatable; files are merged
  -introspection <file>  Introspection JSON response input
  -out <file>            Write SDL to file (default: stdout)
  -v <level>             Log verbosity (default: 0)
  (Exactly one of -schema / -introspection is required)
`

const printIntrospectionUsage = `print-introspection FLAGS:
  -out <file>  Write SDL to file (default: stdout)
`

const batchUsage = `batch FLAGS:
  -config <file>  YAML config listing print jobs (required)
  -v <level>      Log verbosity (default: 0)

CONFIG FORMAT:
  jobs:
    - schema: [a.graphql, b.graphql]
      out: schema.graphql
    - introspection: response.json
      out: other.graphql
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		stdlog.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphprint", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "print":
		return cmdPrint(cmdArgs)
	case "print-introspection":
		return cmdPrintIntrospection(cmdArgs)
	case "batch":
		return cmdBatch(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "print":
		fmt.Print(printUsage)
	case "print-introspection":
		fmt.Print(printIntrospectionUsage)
	case "batch":
		fmt.Print(batchUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// loggerContext returns a context carrying a stderr logger at the requested
// verbosity.
func loggerContext(verbosity int) context.Context {
	stdr.SetVerbosity(verbosity)
	logger := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
	return log.WithLogger(context.Background(), logger)
}

func cmdPrint(args []string) error {
	var schemaFiles stringListFlag
	introspectionFile := ""
	outFile := ""
	verbosity := 0

	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "schema", "GraphQL SDL input")
	fs.StringVar(&introspectionFile, "introspection", introspectionFile, "Introspection JSON input")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	fs.IntVar(&verbosity, "v", verbosity, "Log verbosity")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printUsage)
		return err
	}
	if (len(schemaFiles) == 0) == (introspectionFile == "") {
		fmt.Fprint(os.Stderr, printUsage)
		return fmt.Errorf("exactly one of -schema or -introspection is required")
	}

	ctx := loggerContext(verbosity)
	sch, err := loadModel(ctx, schemaFiles, introspectionFile)
	if err != nil {
		return err
	}
	sdl, err := printer.PrintSchema(sch)
	if err != nil {
		return fmt.Errorf("print schema: %w", err)
	}
	return writeOutput(outFile, sdl)
}

func cmdPrintIntrospection(args []string) error {
	outFile := ""
	fs := flag.NewFlagSet("print-introspection", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printIntrospectionUsage)
		return err
	}
	sdl, err := printer.PrintIntrospectionSchema()
	if err != nil {
		return fmt.Errorf("print introspection schema: %w", err)
	}
	return writeOutput(outFile, sdl)
}

type batchConfig struct {
	Jobs []batchJob `yaml:"jobs"`
}

type batchJob struct {
	Schema        []string `yaml:"schema"`
	Introspection string   `yaml:"introspection"`
	Out           string   `yaml:"out"`
}

func cmdBatch(args []string) error {
	configFile := ""
	verbosity := 0
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&configFile, "config", configFile, "YAML config listing print jobs")
	fs.IntVar(&verbosity, "v", verbosity, "Log verbosity")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, batchUsage)
		return err
	}
	if configFile == "" {
		fmt.Fprint(os.Stderr, batchUsage)
		return fmt.Errorf("-config is required")
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var config batchConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if len(config.Jobs) == 0 {
		return fmt.Errorf("config has no jobs")
	}

	ctx := loggerContext(verbosity)
	for i, job := range config.Jobs {
		if (len(job.Schema) == 0) == (job.Introspection == "") {
			return fmt.Errorf("job %d: exactly one of schema or introspection is required", i)
		}
		sch, err := loadModel(ctx, job.Schema, job.Introspection)
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
		sdl, err := printer.PrintSchema(sch)
		if err != nil {
			return fmt.Errorf("job %d: print schema: %w", i, err)
		}
		if err := writeOutput(job.Out, sdl); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
		log.FromContext(ctx).V(1).Info("printed job", "job", i, "out", job.Out)
	}
	return nil
}

func loadModel(ctx context.Context, schemaFiles []string, introspectionFile string) (*schema.Schema, error) {
	if len(schemaFiles) > 0 {
		return loader.LoadSDLFiles(ctx, schemaFiles...)
	}
	return loader.LoadIntrospectionFile(ctx, introspectionFile)
}

func writeOutput(outFile, sdl string) error {
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}
