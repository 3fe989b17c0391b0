package api

import (
	"carrier-match-service/internal/api/handlers"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	predictor *services.MatchPredictor,
	trainer *services.ModelTrainer,
	examples ports.TrainingExampleStore,
	modelRef string,
) http.Handler {
	mux := http.NewServeMux()

	matchHandler := &handlers.MatchHandler{
		Predictor: predictor,
		ModelRef:  modelRef,
		Examples:  examples,
	}
	modelHandler := &handlers.ModelHandler{
		Trainer:  trainer,
		Examples: examples,
		ModelRef: modelRef,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/matches/predict", matchHandler.Predict)
	mux.HandleFunc("/matches/rank", matchHandler.Rank)
	mux.HandleFunc("/matches/outcomes", matchHandler.RecordOutcome)
	mux.HandleFunc("/models/train", modelHandler.Train)

	return requestIDMiddleware(loggingMiddleware(mux))
}
