// Package server exposes the refinance calculator over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/refi-calc/refi-calc/internal/refinance"
	"github.com/refi-calc/refi-calc/pkg/constants"
	"github.com/refi-calc/refi-calc/pkg/field"
	"github.com/refi-calc/refi-calc/pkg/format"
	"github.com/refi-calc/refi-calc/pkg/output"
	"github.com/refi-calc/refi-calc/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Calculation endpoint for numeric inputs
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Calculation endpoint for editor-driven updates (display-string fields)
	mux.HandleFunc("/api/editor/calculate", h.handleEditorCalculate)

	// Cumulative-cost series endpoint for charting
	mux.HandleFunc("/api/chart", h.handleChart)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type calculateResponse struct {
	Inputs    refinance.MortgageInputs `json:"inputs"`
	Result    output.ResultPayload     `json:"result"`
	Formatted output.FormattedPayload  `json:"formatted"`
	Warnings  []string                 `json:"warnings,omitempty"`
	CSV       string                   `json:"csv"`
	Duration  string                   `json:"duration"`
}

// editorPayload carries all eight fields as the display strings a UI sends
// per keystroke. Every value is parsed fail-soft.
type editorPayload struct {
	OriginalLoanSize string `json:"originalLoanSize"`
	OriginalLoanTerm string `json:"originalLoanTerm"`
	Rate             string `json:"rate"`
	MonthsPaid       string `json:"monthsPaid"`
	DownPayment      string `json:"downPayment"`
	NewRate          string `json:"newRate"`
	NewTerm          string `json:"newTerm"`
	RefiCostRate     string `json:"refiCostRate"`
}

// displayPayload carries the resynchronized display string for every field.
type displayPayload struct {
	OriginalLoanSize string `json:"originalLoanSize"`
	OriginalLoanTerm string `json:"originalLoanTerm"`
	Rate             string `json:"rate"`
	MonthsPaid       string `json:"monthsPaid"`
	DownPayment      string `json:"downPayment"`
	NewRate          string `json:"newRate"`
	NewTerm          string `json:"newTerm"`
	RefiCostRate     string `json:"refiCostRate"`
}

type editorResponse struct {
	calculateResponse
	Display displayPayload `json:"display"`
}

type chartRequest struct {
	Inputs     refinance.MortgageInputs `json:"inputs"`
	StepMonths int                      `json:"stepMonths"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	op := "server.handleCalculate"

	var inputs refinance.MortgageInputs
	if !h.decodeJSON(w, r, &inputs, op, "calculate") {
		return
	}

	result := refinance.Calculate(inputs)
	if !result.Finite() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity,
			"inputs produce non-finite results", op)
		calculationsTotal.WithLabelValues("calculate", "error").Inc()
		return
	}

	response := calculateResponse{
		Inputs:    inputs,
		Result:    output.NewResultPayload(result),
		Formatted: output.NewFormattedPayload(result),
		Warnings:  validation.ValidateInputs(inputs),
		CSV:       output.CsvString(result),
		Duration:  time.Since(start).String(),
	}

	h.observe(op, "calculate", start)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleEditorCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	op := "server.handleEditorCalculate"

	var payload editorPayload
	if !h.decodeJSON(w, r, &payload, op, "editor") {
		return
	}

	var loanSize, downPayment field.CurrencyField
	loanSize.SetText(payload.OriginalLoanSize, 0)
	downPayment.SetText(payload.DownPayment, 0)
	recordFallback("originalLoanSize", payload.OriginalLoanSize, currencyParses)
	recordFallback("downPayment", payload.DownPayment, currencyParses)

	var rate, newRate, refiCostRate field.PercentField
	rate.SetText(payload.Rate)
	newRate.SetText(payload.NewRate)
	refiCostRate.SetText(payload.RefiCostRate)
	recordFallback("rate", payload.Rate, percentParses)
	recordFallback("newRate", payload.NewRate, percentParses)
	recordFallback("refiCostRate", payload.RefiCostRate, percentParses)

	originalTerm := parseIntField("originalLoanTerm", payload.OriginalLoanTerm)
	monthsPaid := parseIntField("monthsPaid", payload.MonthsPaid)
	newTerm := parseIntField("newTerm", payload.NewTerm)

	inputs := refinance.MortgageInputs{
		OriginalLoanSize: loanSize.Value,
		OriginalLoanTerm: originalTerm,
		Rate:             rate.Value,
		MonthsPaid:       monthsPaid,
		DownPayment:      downPayment.Value,
		NewRate:          newRate.Value,
		NewTerm:          newTerm,
		RefiCostRate:     refiCostRate.Value,
	}

	result := refinance.Calculate(inputs)
	if !result.Finite() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity,
			"inputs produce non-finite results", op)
		calculationsTotal.WithLabelValues("editor", "error").Inc()
		return
	}

	loanSize.Sync()
	downPayment.Sync()
	rate.Sync()
	newRate.Sync()
	refiCostRate.Sync()

	response := editorResponse{
		calculateResponse: calculateResponse{
			Inputs:    inputs,
			Result:    output.NewResultPayload(result),
			Formatted: output.NewFormattedPayload(result),
			Warnings:  validation.ValidateInputs(inputs),
			CSV:       output.CsvString(result),
			Duration:  time.Since(start).String(),
		},
		Display: displayPayload{
			OriginalLoanSize: loanSize.Display,
			OriginalLoanTerm: strconv.Itoa(originalTerm),
			Rate:             rate.Display,
			MonthsPaid:       strconv.Itoa(monthsPaid),
			DownPayment:      downPayment.Display,
			NewRate:          newRate.Display,
			NewTerm:          strconv.Itoa(newTerm),
			RefiCostRate:     refiCostRate.Display,
		},
	}

	h.observe(op, "editor", start)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	op := "server.handleChart"

	var request chartRequest
	if !h.decodeJSON(w, r, &request, op, "chart") {
		return
	}

	result := refinance.Calculate(request.Inputs)
	if !result.Finite() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity,
			"inputs produce non-finite results", op)
		calculationsTotal.WithLabelValues("chart", "error").Inc()
		return
	}

	series := refinance.BuildCostSeries(request.Inputs, result, request.StepMonths)

	h.observe(op, "chart", start)
	h.writeJSON(w, http.StatusOK, series)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeJSON reads the request body into dst, enforcing the body size cap.
// It writes the error response itself and reports whether decoding succeeded.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op, endpoint string) bool {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
		} else {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("failed to decode request: %v", err), op)
		}
		calculationsTotal.WithLabelValues(endpoint, "error").Inc()
		return false
	}

	return true
}

func (h *handler) observe(op, endpoint string, start time.Time) {
	elapsed := time.Since(start)
	calculationsTotal.WithLabelValues(endpoint, "ok").Inc()
	calculationDuration.Observe(elapsed.Seconds())

	h.logger.Info("calculation served",
		zap.String("op", op),
		zap.String("endpoint", endpoint),
		zap.Duration("duration", elapsed),
	)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

type parseKind int

const (
	currencyParses parseKind = iota
	percentParses
	integerParses
)

// recordFallback increments the parse-fallback counter when non-empty field
// text fails to parse as a number and the engine will see zero instead.
func recordFallback(name, raw string, kind parseKind) {
	cleaned := strings.TrimSpace(raw)
	switch kind {
	case currencyParses:
		cleaned = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	case percentParses:
		cleaned = strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	}
	if cleaned == "" {
		return
	}

	if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
		parseFallbacks.WithLabelValues(name).Inc()
	}
}

func parseIntField(name, raw string) int {
	recordFallback(name, raw, integerParses)
	return int(format.ParseCurrency(raw))
}
