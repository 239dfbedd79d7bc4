package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/fitforge/internal/coach"
	"github.com/davidbz/fitforge/internal/fallback"
	"github.com/davidbz/fitforge/internal/observability"
)

const maxRequestBody = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	coach *coach.Service
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(service *coach.Service) *Handler {
	return &Handler{
		coach: service,
	}
}

// ChatResponse is the body returned by HandleChat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// HandleWorkout generates a workout plan.
func (h *Handler) HandleWorkout(w http.ResponseWriter, r *http.Request) {
	var params coach.WorkoutParams
	if !decode(w, r, &params) {
		return
	}

	writeJSON(w, r, h.coach.GenerateWorkoutPlan(r.Context(), params))
}

// HandleNutritionTargets computes daily nutrition targets.
func (h *Handler) HandleNutritionTargets(w http.ResponseWriter, r *http.Request) {
	var params coach.NutritionParams
	if !decode(w, r, &params) {
		return
	}

	writeJSON(w, r, h.coach.ComputeNutritionTargets(r.Context(), params))
}

// HandleMacroSplit suggests a macro split. An unknown preset is the caller's error.
func (h *Handler) HandleMacroSplit(w http.ResponseWriter, r *http.Request) {
	var params coach.MacroParams
	if !decode(w, r, &params) {
		return
	}

	split, err := h.coach.SuggestMacroSplit(r.Context(), params)
	if errors.Is(err, fallback.ErrUnknownPreset) {
		http.Error(w, fmt.Sprintf("%v (known presets: %v)", err, fallback.Presets()), http.StatusBadRequest)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("macro split failed", observability.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, split)
}

// HandleChat answers a free-text coaching message.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var params coach.ChatParams
	if !decode(w, r, &params) {
		return
	}

	writeJSON(w, r, ChatResponse{Reply: h.coach.Chat(r.Context(), params)})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, r, map[string]string{
		"status": "healthy",
	})
}

// decode enforces POST and reads a bounded JSON body into dst. It writes the error response
// itself and reports whether the caller should continue.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
