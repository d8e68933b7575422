package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/chart"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/output"
	"github.com/iwvelando/compound-growth/pkg/report"
	"github.com/iwvelando/compound-growth/pkg/series"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger          *zap.Logger
	runner          *simulate.Runner
	maxUploadSize   int64
	maxHorizonYears float64
	version         string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
// Simulations projecting further than maxHorizonYears are rejected.
func NewHandler(logger *zap.Logger, runner *simulate.Runner, maxUploadSize int64, maxHorizonYears float64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if runner == nil {
		runner = simulate.NewRunner(logger, nil, "")
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	if maxHorizonYears <= 0 {
		maxHorizonYears = constants.DefaultMaxHorizonYears
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	chart.EnsureRegistered()

	h := &handler{
		logger:          logger,
		runner:          runner,
		maxUploadSize:   maxUploadSize,
		maxHorizonYears: maxHorizonYears,
		version:         trimmedVersion,
	}

	mux := http.NewServeMux()

	// Single-simulation endpoints driven by JSON parameter bundles
	mux.HandleFunc("/api/growth", h.handleGrowth)
	mux.HandleFunc("/api/contribution", h.handleContribution)
	mux.HandleFunc("/api/timing", h.handleTiming)

	// Batch endpoints driven by an uploaded YAML configuration
	mux.HandleFunc("/api/forecast", h.handleForecast)
	mux.HandleFunc("/api/report", h.handleReport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulationResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Kind     string          `json:"kind"`
	Cached   bool            `json:"cached"`
	Points   interface{}     `json:"points"`
	Labels   []string        `json:"labels"`
	Datasets []chart.Dataset `json:"datasets"`
	Duration string          `json:"duration,omitempty"`
}

type forecastResponse struct {
	Simulations []simulationResponse   `json:"simulations"`
	CSV         string                 `json:"csv"`
	Warnings    []string               `json:"warnings,omitempty"`
	Duration    string                 `json:"duration"`
	Config      map[string]interface{} `json:"config,omitempty"`
}

func (h *handler) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var params series.GrowthParams
	if !h.decodeParams(w, r, &params, "server.handleGrowth") {
		return
	}
	h.runSingle(r.Context(), w, config.Simulation{Kind: constants.KindGrowth, Growth: params}, "server.handleGrowth")
}

func (h *handler) handleContribution(w http.ResponseWriter, r *http.Request) {
	var params series.ContributionParams
	if !h.decodeParams(w, r, &params, "server.handleContribution") {
		return
	}
	h.runSingle(r.Context(), w, config.Simulation{Kind: constants.KindContribution, Contribution: params}, "server.handleContribution")
}

func (h *handler) handleTiming(w http.ResponseWriter, r *http.Request) {
	var params series.TimingParams
	if !h.decodeParams(w, r, &params, "server.handleTiming") {
		return
	}
	h.runSingle(r.Context(), w, config.Simulation{Kind: constants.KindTiming, Timing: params}, "server.handleTiming")
}

// decodeParams reads a JSON parameter bundle. Missing fields default to zero
// and are clamped like any other value.
func (h *handler) decodeParams(w http.ResponseWriter, r *http.Request, params interface{}, op string) bool {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(params); err != nil && !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode parameters: %v", err), op)
		return false
	}
	return true
}

func (h *handler) runSingle(ctx context.Context, w http.ResponseWriter, sim config.Simulation, op string) {
	if err := h.checkHorizon(sim); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	start := time.Now()
	result, err := h.runner.RunSimulation(ctx, sim)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	response := buildSimulationResponse(result)
	response.Duration = time.Since(start).String()

	h.logger.Info("simulation served",
		zap.String("op", op),
		zap.String("id", result.ID),
		zap.Int("points", result.Len()),
		zap.Bool("cached", result.Cached),
	)

	h.writeJSON(w, http.StatusOK, response, op)
}

// checkHorizon rejects simulations whose horizon exceeds the configured limit.
func (h *handler) checkHorizon(sim config.Simulation) error {
	if years := sim.HorizonYears(); years > h.maxHorizonYears {
		return fmt.Errorf("simulation %q horizon of %g years exceeds the limit of %g years", sim.Name, years, h.maxHorizonYears)
	}
	return nil
}

// checkActiveHorizons applies checkHorizon to every simulation Run would execute.
func (h *handler) checkActiveHorizons(cfg *config.Configuration) error {
	for _, sim := range cfg.ActiveSimulations() {
		if err := h.checkHorizon(sim); err != nil {
			return err
		}
	}
	return nil
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	configBytes, ok := h.readUpload(w, r, "server.handleForecast")
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleForecast")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleForecast")
		return
	}

	if err := h.checkActiveHorizons(cfg); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleForecast")
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := h.runner.Run(r.Context(), *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to run simulations: %v", err), "server.handleForecast")
		return
	}

	simulations := make([]simulationResponse, 0, len(results))
	for _, result := range results {
		simulations = append(simulations, buildSimulationResponse(result))
	}

	elapsed := time.Since(start)
	response := forecastResponse{
		Simulations: simulations,
		CSV:         output.CsvString(results),
		Warnings:    warnings,
		Duration:    elapsed.String(),
		Config:      configMap,
	}

	h.logger.Info("forecast computed",
		zap.String("op", "server.handleForecast"),
		zap.Int("simulations", len(simulations)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response, "server.handleForecast")
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	configBytes, ok := h.readUpload(w, r, "server.handleReport")
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleReport")
		return
	}

	if err := h.checkActiveHorizons(cfg); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleReport")
		return
	}

	results, err := h.runner.Run(r.Context(), *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to run simulations: %v", err), "server.handleReport")
		return
	}

	data, err := report.PDFBytes("Compound growth", results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleReport")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="compound-growth.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write PDF response",
			zap.String("op", "server.handleReport"),
			zap.Error(err),
		)
	}
}

// readUpload returns the YAML configuration posted as the multipart "file" field.
func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	}, "server.handleVersion")
}

func buildSimulationResponse(result simulate.Result) simulationResponse {
	response := simulationResponse{
		ID:     result.ID,
		Name:   result.Name,
		Kind:   result.Kind,
		Cached: result.Cached,
		Labels: chart.Labels(result.Len()),
	}

	switch result.Kind {
	case constants.KindGrowth:
		response.Points = result.Growth
		response.Datasets = chart.GrowthDatasets(result.Growth)
	case constants.KindContribution:
		response.Points = result.Contribution
		response.Datasets = chart.ContributionDatasets(result.Contribution)
	case constants.KindTiming:
		response.Points = result.Timing
		response.Datasets = chart.TimingDatasets(result.Timing)
	}

	return response
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg}, op)
}

// writeJSON encodes payload before committing the status. An unencodable
// payload, such as a series that overflowed to +Inf, becomes a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}, op string) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", op),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		fallback := map[string]string{"error": fmt.Sprintf("failed to encode response: %v", err)}
		if err := json.NewEncoder(&buf).Encode(fallback); err != nil {
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
