// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/refi-calc/refi-calc/internal/refinance"
	"github.com/refi-calc/refi-calc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for refi-calc.
type Configuration struct {
	Mortgage  MortgageConfig
	Refinance RefinanceConfig
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// MortgageConfig describes the borrower's existing mortgage. Rate is a
// decimal fraction (0.065 = 6.5%).
type MortgageConfig struct {
	LoanSize    float64 `yaml:"loanSize"`
	TermYears   int     `yaml:"termYears"`
	Rate        float64 `yaml:"rate"`
	MonthsPaid  int     `yaml:"monthsPaid"`
	DownPayment float64 `yaml:"downPayment"`
}

// RefinanceConfig describes the proposed refinance offer. CostRate is the
// closing cost as a decimal fraction of the new loan principal.
type RefinanceConfig struct {
	Rate      float64 `yaml:"rate"`
	TermYears int     `yaml:"termYears"`
	CostRate  float64 `yaml:"costRate"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory payload, mirroring LoadConfiguration for callers that already
// hold the bytes (e.g. an HTTP request body).
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Inputs maps the configuration onto the engine's input record.
func (c *Configuration) Inputs() refinance.MortgageInputs {
	return refinance.MortgageInputs{
		OriginalLoanSize: c.Mortgage.LoanSize,
		OriginalLoanTerm: c.Mortgage.TermYears,
		Rate:             c.Mortgage.Rate,
		MonthsPaid:       c.Mortgage.MonthsPaid,
		DownPayment:      c.Mortgage.DownPayment,
		NewRate:          c.Refinance.Rate,
		NewTerm:          c.Refinance.TermYears,
		RefiCostRate:     c.Refinance.CostRate,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	return validation.ValidateInputs(c.Inputs())
}
