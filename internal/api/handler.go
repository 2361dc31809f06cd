package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/application"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	mperrors "github.com/Meesho/BharatMLStack/matrix-planner/internal/errors"
)

// Plans can embed long as-of time lists, so the body cap is generous.
const maxBodyBytes = 16 << 20

type Handler struct {
	plans *application.PlanService
}

func NewHandler(plans *application.PlanService) *Handler {
	return &Handler{plans: plans}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health/self", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "true"})
	})
	mux.HandleFunc("/api/1.0/", h.handleAPI)
}

func (h *Handler) handleAPI(w http.ResponseWriter, r *http.Request) {
	route, ok := parseRoute(r.URL.Path)
	if !ok {
		writeErr(w, http.StatusNotFound, "route not found")
		return
	}

	switch {
	case route == "plans/generate" && r.Method == http.MethodPost:
		h.generatePlans(w, r)
	case route == "plans/generate":
		writeErr(w, http.StatusMethodNotAllowed, "use POST")
	default:
		writeErr(w, http.StatusNotFound, "route not found")
	}
}

func (h *Handler) generatePlans(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlansRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateDictionaries(req.FeatureDictionaries); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}

	out, err := h.plans.GeneratePlans(r.Context(), application.PlanRequest{
		MatrixSetDefinitions: req.MatrixSetDefinitions,
		FeatureDictionaries:  req.FeatureDictionaries,
		Profile:              req.Profile,
		Dispatch:             req.Dispatch,
	})
	if err != nil {
		if errors.Is(err, mperrors.ErrPublishFailed) {
			writeErr(w, http.StatusBadGateway, "plan generated but build task dispatch failed")
			return
		}
		writeErr(w, http.StatusInternalServerError, "failed to generate matrix plans")
		return
	}

	writeJSON(w, http.StatusOK, GeneratePlansResponse{
		Definitions:     out.Definitions,
		BuildTasks:      out.BuildTasks,
		DefinitionCount: len(out.Definitions),
		BuildTaskCount:  len(out.BuildTasks),
	})
}

// validateDictionaries rejects the one malformation the planner cannot
// degrade on gracefully: a feature table without a name would silently fold
// distinct dictionaries together.
func validateDictionaries(dictionaries []models.FeatureDictionary) string {
	for i, d := range dictionaries {
		for _, table := range d.Tables {
			if strings.TrimSpace(table.Name) == "" {
				return fmt.Sprintf("feature_dictionaries[%d] has a table with an empty name", i)
			}
		}
	}
	return ""
}

func parseRoute(path string) (string, bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "1.0" {
		return "", false
	}
	route := strings.Join(parts[2:], "/")
	if route == "" {
		return "", false
	}
	return route, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

func writeErr(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal serialization error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

type requestIDContextKey string

const requestIDKey requestIDContextKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	val := ctx.Value(requestIDKey)
	id, _ := val.(string)
	return id
}
