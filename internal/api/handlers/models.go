package handlers

import (
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/services"
	"net/http"
	"sync"
)

// ModelHandler retrains the served model from stored outcomes.
type ModelHandler struct {
	Trainer  *services.ModelTrainer
	Examples ports.TrainingExampleSource
	ModelRef string

	// Training runs are serialized; predictions keep using the previous
	// model until the new artifact is in place.
	mu sync.Mutex
}

func (h *ModelHandler) Train(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	examples, err := h.Examples.ListTrainingExamples(r.Context())
	if err != nil {
		writeFailure(w, r, domain.Fail("train", domain.KindTraining, err))
		return
	}

	summary, err := h.Trainer.Train(r.Context(), examples, h.ModelRef)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TrainResponse{
		Success:   true,
		Message:   summary.Message,
		Examples:  summary.Examples,
		Successes: summary.Successes,
		Failures:  summary.Failures,
	})
}
