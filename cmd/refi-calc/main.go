package main

import (
	"flag"
	"fmt"

	"github.com/refi-calc/refi-calc/internal/config"
	"github.com/refi-calc/refi-calc/internal/logging"
	"github.com/refi-calc/refi-calc/internal/refinance"
	"github.com/refi-calc/refi-calc/pkg/constants"
	"github.com/refi-calc/refi-calc/pkg/field"
	"github.com/refi-calc/refi-calc/pkg/format"
	"github.com/refi-calc/refi-calc/pkg/output"
	"github.com/refi-calc/refi-calc/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file; empty to run from flags alone")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")

	// Field overrides take display-string input, exactly what a form field
	// holds: grouped currency ("350,000"), human percentages ("6.5%").
	loanSizeFlag := flag.String("loan-size", "", "original loan size override, e.g. \"350,000\"")
	termFlag := flag.String("term", "", "original loan term override in years")
	rateFlag := flag.String("rate", "", "original rate override, e.g. \"6.5%\"")
	monthsPaidFlag := flag.String("months-paid", "", "months already paid override")
	downPaymentFlag := flag.String("down-payment", "", "down payment override")
	newRateFlag := flag.String("new-rate", "", "refinance rate override, e.g. \"5%\"")
	newTermFlag := flag.String("new-term", "", "refinance term override in years")
	refiCostRateFlag := flag.String("refi-cost-rate", "", "refinance cost rate override, e.g. \"1%\"")
	flag.Parse()

	// Load the config file to get logging configuration. An empty -config
	// skips the file so the calculator can run from field overrides alone.
	var conf *config.Configuration
	if *configLocation == "" {
		conf = &config.Configuration{}
	} else {
		var err error
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.InitializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	applyFieldOverrides(conf,
		*loanSizeFlag, *termFlag, *rateFlag, *monthsPaidFlag,
		*downPaymentFlag, *newRateFlag, *newTermFlag, *refiCostRateFlag)

	inputs := conf.Inputs()

	// Validate inputs and display any warnings
	for _, warning := range validation.ValidateInputs(inputs) {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result := refinance.Calculate(inputs)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(inputs, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatJSON:
		text, err := output.JSONString(inputs, result)
		if err != nil {
			logger.Fatal("failed to encode result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Println(text)
	}
}

// applyFieldOverrides routes non-empty display-string flags through the field
// state layer so flag text follows the same parsing rules as form input.
func applyFieldOverrides(conf *config.Configuration,
	loanSize, term, rate, monthsPaid, downPayment, newRate, newTerm, refiCostRate string) {
	if loanSize != "" {
		var f field.CurrencyField
		f.SetText(loanSize, 0)
		conf.Mortgage.LoanSize = f.Value
	}
	if term != "" {
		conf.Mortgage.TermYears = int(format.ParseCurrency(term))
	}
	if rate != "" {
		var f field.PercentField
		f.SetText(rate)
		conf.Mortgage.Rate = f.Value
	}
	if monthsPaid != "" {
		conf.Mortgage.MonthsPaid = int(format.ParseCurrency(monthsPaid))
	}
	if downPayment != "" {
		var f field.CurrencyField
		f.SetText(downPayment, 0)
		conf.Mortgage.DownPayment = f.Value
	}
	if newRate != "" {
		var f field.PercentField
		f.SetText(newRate)
		conf.Refinance.Rate = f.Value
	}
	if newTerm != "" {
		conf.Refinance.TermYears = int(format.ParseCurrency(newTerm))
	}
	if refiCostRate != "" {
		var f field.PercentField
		f.SetText(refiCostRate)
		conf.Refinance.CostRate = f.Value
	}
}
