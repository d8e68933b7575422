package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/compound-growth/internal/cache"
	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/internal/logging"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/output"
	"github.com/iwvelando/compound-growth/pkg/report"
	"github.com/iwvelando/compound-growth/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf, yaml")
	outputFileFlag := flag.String("output-file", "", "write output to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	repo, err := cache.New(conf.Cache, logger)
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	defer func() {
		if err := cache.Close(repo); err != nil {
			logger.Warn("failed to close cache",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	runner := simulate.NewRunner(logger, repo, conf.Cache.KeyPrefix)
	results, err := runner.Run(context.Background(), *conf)
	if err != nil {
		logger.Fatal("failed to run simulations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			logger.Fatal("failed to create output file",
				zap.String("op", "main"),
				zap.String("file", outputFile),
				zap.Error(err),
			)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("failed to close output file",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
		}()
		w = f
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(w, results)
	case constants.OutputFormatPDF:
		err = report.WritePDF(w, "Compound growth", results)
	case constants.OutputFormatYAML:
		err = output.YamlFormat(w, results)
	}
	if err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}
