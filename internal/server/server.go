package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/internal/optimizer"
	"github.com/iwvelando/debt-payoff/internal/store"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/output"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"github.com/iwvelando/debt-payoff/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	store         store.Store
	maxUploadSize int64
	maxMonths     int
	version       string
}

// Options configures NewHandler. Zero values select the defaults.
type Options struct {
	Store         store.Store
	MaxUploadSize int64
	MaxMonths     int
	Version       string
}

// NewHandler constructs the HTTP handler that serves the payoff API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = constants.DefaultMaxMonths
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		store:         opts.Store,
		maxUploadSize: opts.MaxUploadSize,
		maxMonths:     opts.MaxMonths,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Single strategy schedule
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Snowball versus avalanche
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Minimum extra payment for a payoff horizon
	mux.HandleFunc("/api/target", h.handleTarget)

	// YAML configuration upload, run as the CLI would
	mux.HandleFunc("/api/run", h.handleRun)

	// Request to configuration YAML for downloads
	mux.HandleFunc("/api/export", h.handleExport)

	// Last saved inputs
	mux.HandleFunc("/api/saved", h.handleSaved)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// planRequest is the JSON body accepted by the plan endpoints.
type planRequest struct {
	Debts        []payoff.Debt  `json:"debts"`
	ExtraPayment float64        `json:"extraPayment"`
	Strategy     string         `json:"strategy,omitempty"`
	StartDate    string         `json:"startDate,omitempty"`
	MaxMonths    int            `json:"maxMonths,omitempty"`
	Target       *config.Target `json:"target,omitempty"`
}

type planResponse struct {
	Result   payoff.PayoffResult `json:"result"`
	CSV      string              `json:"csv"`
	Warnings []string            `json:"warnings,omitempty"`
	Duration string              `json:"duration"`
}

type compareResponse struct {
	Comparison payoff.Comparison `json:"comparison"`
	Summary    string            `json:"summary"`
	Warnings   []string          `json:"warnings,omitempty"`
	Duration   string            `json:"duration"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason,omitempty"`
	DebtIndex *int   `json:"debtIndex,omitempty"`
	DebtID    string `json:"debtId,omitempty"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlan"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}
	strategy, err := payoff.ParseStrategy(req.Strategy)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}

	result, err := h.simulator(req).Run(req.Debts, req.ExtraPayment, strategy)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("payoff plan computed",
		zap.String("op", op),
		zap.String("strategy", string(strategy)),
		zap.Int("debts", len(req.Debts)),
		zap.Int("months", result.MonthsToPayoff),
		zap.Bool("converged", result.Converged),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, planResponse{
		Result:   result,
		CSV:      output.CsvString(result),
		Warnings: validation.PlanWarnings(req.Debts, req.ExtraPayment),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}

	comparison, err := h.simulator(req).Compare(req.Debts, req.ExtraPayment)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("payoff comparison computed",
		zap.String("op", op),
		zap.Int("debts", len(req.Debts)),
		zap.Float64("interestSaved", comparison.InterestSaved),
		zap.Int("monthsSaved", comparison.MonthsSaved),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, compareResponse{
		Comparison: comparison,
		Summary:    output.Summary(comparison),
		Warnings:   validation.PlanWarnings(req.Debts, req.ExtraPayment),
		Duration:   elapsed.String(),
	})
}

func (h *handler) handleTarget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTarget"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}
	if req.Target == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, errors.New("target is required"), op)
		return
	}
	if err := req.Target.Resolve(req.StartDate); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}

	runner := optimizer.NewRunner(h.logger, h.simulator(req))
	summary, err := runner.Run(req.Debts, req.ExtraPayment, validation.NormalizeMode(req.Strategy), *req.Target)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleRun(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRun"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondBodyError(w, err, "failed to parse upload", op)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, errors.New("missing configuration file"), op)
		return
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
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Errorf("failed to read configuration: %w", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
		return
	}

	req := planRequest{
		Debts:        cfg.Plan.Debts,
		ExtraPayment: cfg.Plan.ExtraPayment,
		Strategy:     cfg.Plan.Strategy,
		StartDate:    cfg.Plan.StartDate,
		MaxMonths:    cfg.Plan.MaxMonths,
		Target:       cfg.Plan.Target,
	}
	sim := h.simulator(req)

	response := map[string]interface{}{
		"warnings": cfg.ValidateConfiguration(),
	}
	if cfg.Plan.Strategy == constants.ModeCompare {
		comparison, err := sim.Compare(req.Debts, req.ExtraPayment)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
			return
		}
		response["comparison"] = comparison
		response["summary"] = output.Summary(comparison)
	} else {
		result, err := sim.Run(req.Debts, req.ExtraPayment, payoff.Strategy(cfg.Plan.Strategy))
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
			return
		}
		response["result"] = result
		response["csv"] = output.CsvString(result)
	}
	if cfg.Plan.Target != nil {
		summary, err := optimizer.NewRunner(h.logger, sim).Run(req.Debts, req.ExtraPayment, req.Strategy, *cfg.Plan.Target)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
			return
		}
		response["target"] = summary
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodePlanRequest(w, r, op)
	if !ok {
		return
	}

	conf := config.Configuration{
		Plan: config.Plan{
			StartDate:    req.StartDate,
			ExtraPayment: req.ExtraPayment,
			Strategy:     validation.NormalizeMode(req.Strategy),
			MaxMonths:    req.MaxMonths,
			Debts:        req.Debts,
			Target:       req.Target,
		},
	}
	yamlBytes, err := yaml.Marshal(conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Errorf("failed to encode configuration: %w", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleSaved(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaved"
	switch r.Method {
	case http.MethodGet:
		snapshot, err := h.store.Load(r.Context())
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Errorf("failed to load saved plan: %w", err), op)
			return
		}
		if snapshot == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.writeJSON(w, http.StatusOK, snapshot)

	case http.MethodPut:
		req, ok := h.decodePlanRequest(w, r, op)
		if !ok {
			return
		}
		if err := payoff.Validate(req.Debts, req.ExtraPayment); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err, op)
			return
		}
		snapshot := store.Snapshot{
			Debts:        req.Debts,
			ExtraPayment: req.ExtraPayment,
			SavedAt:      time.Now().UTC(),
		}
		if err := h.store.Save(r.Context(), snapshot); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Errorf("failed to save plan: %w", err), op)
			return
		}
		h.logger.Info("plan saved",
			zap.String("op", op),
			zap.Int("debts", len(snapshot.Debts)),
		)
		h.writeJSON(w, http.StatusOK, snapshot)

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
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

// decodePlanRequest reads a size-capped JSON body and assigns IDs to debts
// that arrive without one. It writes the error response itself.
func (h *handler) decodePlanRequest(w http.ResponseWriter, r *http.Request, op string) (planRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBodyError(w, err, "failed to decode request", op)
		return planRequest{}, false
	}
	req.Debts = config.AssignDebtIDs(req.Debts)
	return req, true
}

// simulator builds a Simulator for one request, bounded by the server's
// month cap.
func (h *handler) simulator(req planRequest) *payoff.Simulator {
	maxMonths := req.MaxMonths
	if maxMonths == 0 || maxMonths > h.maxMonths {
		maxMonths = h.maxMonths
	}
	return payoff.NewSimulator(h.logger, payoff.Options{
		MaxMonths: maxMonths,
		StartDate: req.StartDate,
	})
}

func (h *handler) respondBodyError(w http.ResponseWriter, err error, msg string, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Errorf("%s: %w", msg, err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, err error, op string) {
	resp := errorResponse{Error: err.Error()}
	var verr *payoff.ValidationError
	if errors.As(err, &verr) {
		resp.Reason = string(verr.Reason)
		resp.DebtID = verr.DebtID
		if verr.DebtIndex >= 0 {
			index := verr.DebtIndex
			resp.DebtIndex = &index
		}
	}

	h.logger.Error("payoff request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("reason", resp.Reason),
		zap.Error(err),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
