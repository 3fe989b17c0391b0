package handlers

import (
	"carrier-match-service/internal/api/dto"
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/records"
	"carrier-match-service/internal/services"
	"net/http"
)

// MatchHandler exposes scoring endpoints and records match outcomes.
type MatchHandler struct {
	Predictor *services.MatchPredictor
	ModelRef  string
	Examples  ports.TrainingExampleStore
}

func (h *MatchHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PredictRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := records.Validate("predict", &req); err != nil {
		writeFailure(w, r, err)
		return
	}

	pkg, err := req.Package.Domain()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	carrier, err := req.Carrier.Domain()
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res, err := h.Predictor.Predict(r.Context(), h.ModelRef, pkg, carrier)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewMatchResponse(res))
}

func (h *MatchHandler) Rank(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RankRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := records.Validate("rank", &req); err != nil {
		writeFailure(w, r, err)
		return
	}

	pkg, err := req.Package.Domain()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	carriers := make([]domain.Carrier, 0, len(req.Carriers))
	for i := range req.Carriers {
		c, err := req.Carriers[i].Domain()
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		carriers = append(carriers, c)
	}

	ranked, err := h.Predictor.Rank(r.Context(), h.ModelRef, pkg, carriers, req.Limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := dto.RankResponse{Matches: make([]dto.MatchResponse, 0, len(ranked))}
	for _, m := range ranked {
		res.Matches = append(res.Matches, dto.NewMatchResponse(m))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// RecordOutcome stores a completed match as a training example.
func (h *MatchHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req records.TrainingExample
	if !decodeBody(w, r, &req) {
		return
	}
	ex, err := req.Validated()
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	// Reject outcomes the trainer could not featurize later.
	if _, err := services.BuildFeatureVector(ex.Package, ex.Carrier); err != nil {
		writeFailure(w, r, domain.Fail("record outcome", domain.ClassifyKind(err), err))
		return
	}

	if err := h.Examples.AddTrainingExamples(r.Context(), []domain.TrainingExample{ex}); err != nil {
		writeFailure(w, r, domain.Fail("record outcome", domain.KindInternal, err))
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.OutcomeResponse{Recorded: true})
}
