package api

import (
	"carrier-match-service/internal/adapters/cache"
	"carrier-match-service/internal/adapters/model"
	"carrier-match-service/internal/adapters/repositories"
	"carrier-match-service/internal/platform/db"
	"carrier-match-service/internal/ports"
	"carrier-match-service/internal/records"
	"carrier-match-service/internal/services"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packageJSON = `{
	"id": "pkg-1",
	"pickupCoordinates": [40.7128, -74.006],
	"deliveryCoordinates": [40.7306, -73.9352],
	"pickupWindow": ["09:00", "10:00"],
	"deliveryWindow": ["11:00", "12:00"],
	"dimensions": {"length": 1, "width": 1, "height": 1, "weight": 10},
	"urgency": "high"
}`

const carrierJSON = `{
	"id": "carrier-1",
	"routeCoordinates": [[40.7128, -74.006], [40.72, -73.97], [40.7306, -73.9352]],
	"schedule": {"startTime": "08:00", "endTime": "18:00"},
	"vehicleCapacity": {"length": 2, "width": 2, "height": 2, "weightLimit": 100},
	"rating": 4.8,
	"onTimeRate": 0.95
}`

const farCarrierJSON = `{
	"id": "carrier-far",
	"routeCoordinates": [[41.2, -73.2]],
	"schedule": {"startTime": "08:00", "endTime": "18:00"},
	"vehicleCapacity": {"length": 2, "width": 2, "height": 2, "weightLimit": 100},
	"rating": 2.0
}`

type fixture struct {
	handler  http.Handler
	repo     *repositories.SqliteTrainingExampleRepository
	conn     *sql.DB
	modelRef string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return buildFixture(t, false)
}

// buildFixture serves the seeded store; withCache adds the SQLite match cache
// on the same connection.
func buildFixture(t *testing.T, withCache bool) fixture {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	repo := repositories.NewSqliteTrainingExampleRepository(conn)
	_, err = repositories.SeedFromJSON(context.Background(), repo, filepath.Join("..", "..", "data", "seeds", "training_examples.json"))
	require.NoError(t, err)

	store := model.NewMemoStore(model.NewFileModelStore(nil))
	modelRef := filepath.Join(t.TempDir(), "match_model.json")

	var matchCache ports.MatchCache
	if withCache {
		matchCache = cache.NewSqliteMatchCache(conn, 15*time.Minute)
	}

	router := NewRouter(
		services.NewMatchPredictor(store, matchCache),
		services.NewModelTrainer(model.NewLogisticTrainer(), store),
		repo,
		modelRef,
	)
	return fixture{handler: router, repo: repo, conn: conn, modelRef: modelRef}
}

func (f fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func predictBody(pkg, carrier string) string {
	return `{"package": ` + pkg + `, "carrier": ` + carrier + `}`
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
}

func TestPredictBeforeTrainingFails(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodPost, "/matches/predict", predictBody(packageJSON, carrierJSON))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, out["error"], "load model")
}

func TestTrainThenPredict(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodPost, "/models/train", "")
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Model trained successfully", out["message"])
	assert.Equal(t, float64(6), out["examples"])

	rec, out = f.do(t, http.MethodPost, "/matches/predict", predictBody(packageJSON, carrierJSON))
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Equal(t, "carrier-1", out["carrierId"])
	assert.Equal(t, "pkg-1", out["packageId"])
	assert.Equal(t, float64(200), out["compensation"])

	score := out["matchScore"].(float64)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	deviation := out["routeDeviation"].(map[string]any)
	assert.Equal(t, float64(0), deviation["distance"])
	assert.Equal(t, float64(0), deviation["time"])
}

func TestPredictAfterRetrainUsesNewModel(t *testing.T) {
	f := buildFixture(t, true)
	ctx := context.Background()

	rec, out := f.do(t, http.MethodPost, "/models/train", "")
	require.Equal(t, http.StatusOK, rec.Code, out)

	rec, out = f.do(t, http.MethodPost, "/matches/predict", predictBody(packageJSON, carrierJSON))
	require.Equal(t, http.StatusOK, rec.Code, out)
	before := out["matchScore"].(float64)

	// Flip every stored outcome so the retrained model disagrees.
	examples, err := f.repo.ListTrainingExamples(ctx)
	require.NoError(t, err)
	for i := range examples {
		examples[i].Success = !examples[i].Success
	}
	_, err = f.conn.ExecContext(ctx, `DELETE FROM training_examples;`)
	require.NoError(t, err)
	require.NoError(t, f.repo.AddTrainingExamples(ctx, examples))

	rec, out = f.do(t, http.MethodPost, "/models/train", "")
	require.Equal(t, http.StatusOK, rec.Code, out)

	rec, out = f.do(t, http.MethodPost, "/matches/predict", predictBody(packageJSON, carrierJSON))
	require.Equal(t, http.StatusOK, rec.Code, out)
	after := out["matchScore"].(float64)

	pkg, err := records.DecodePackage([]byte(packageJSON))
	require.NoError(t, err)
	carrier, err := records.DecodeCarrier([]byte(carrierJSON))
	require.NoError(t, err)
	fresh, err := services.NewMatchPredictor(model.NewFileModelStore(nil), nil).Predict(ctx, f.modelRef, pkg, carrier)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.Equal(t, fresh.MatchScore, after)

	var cached int
	require.NoError(t, f.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_cache;`).Scan(&cached))
	assert.Equal(t, 2, cached, "each model version gets its own entry")
}

func TestRank(t *testing.T) {
	f := newFixture(t)
	rec, _ := f.do(t, http.MethodPost, "/models/train", "")
	require.Equal(t, http.StatusOK, rec.Code)

	carriers := `[` + farCarrierJSON + `, ` + carrierJSON + `]`

	rec, out := f.do(t, http.MethodPost, "/matches/rank", `{"package": `+packageJSON+`, "carriers": `+carriers+`}`)
	require.Equal(t, http.StatusOK, rec.Code, out)

	matches := out["matches"].([]any)
	require.Len(t, matches, 2)
	first := matches[0].(map[string]any)
	second := matches[1].(map[string]any)
	assert.GreaterOrEqual(t, first["matchScore"], second["matchScore"])

	rec, out = f.do(t, http.MethodPost, "/matches/rank", `{"package": `+packageJSON+`, "carriers": `+carriers+`, "limit": 1}`)
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Len(t, out["matches"], 1)

	rec, out = f.do(t, http.MethodPost, "/matches/rank", `{"package": `+packageJSON+`, "carriers": []}`)
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Empty(t, out["matches"])
}

func TestPredictRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	emptyRoute := strings.Replace(carrierJSON,
		`"routeCoordinates": [[40.7128, -74.006], [40.72, -73.97], [40.7306, -73.9352]]`,
		`"routeCoordinates": []`, 1)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"package": `, wantMsg: "invalid json body"},
		{name: "unknown field", body: `{"package": ` + packageJSON + `, "carrier": ` + carrierJSON + `, "extra": 1}`, wantMsg: "invalid json body"},
		{name: "missing carrier", body: `{"package": ` + packageJSON + `}`, wantMsg: "carrier is required"},
		{name: "empty route", body: predictBody(packageJSON, emptyRoute), wantMsg: "route"},
		{name: "string dimension", body: predictBody(strings.Replace(packageJSON, `"weight": 10`, `"weight": "heavy"`, 1), carrierJSON), wantMsg: "invalid json body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := f.do(t, http.MethodPost, "/matches/predict", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, out["error"], tt.wantMsg)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodGet, "/matches/predict", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", out["error"])
}

func TestRecordOutcome(t *testing.T) {
	f := newFixture(t)

	body := `{"package": ` + packageJSON + `, "carrier": ` + carrierJSON + `, "success": true}`
	rec, out := f.do(t, http.MethodPost, "/matches/outcomes", body)
	require.Equal(t, http.StatusCreated, rec.Code, out)
	assert.Equal(t, true, out["recorded"])

	examples, err := f.repo.ListTrainingExamples(context.Background())
	require.NoError(t, err)
	assert.Len(t, examples, 7)

	zeroWindow := strings.Replace(packageJSON, `"deliveryWindow": ["11:00", "12:00"]`, `"deliveryWindow": ["11:00", "11:00"]`, 1)
	rec, out = f.do(t, http.MethodPost, "/matches/outcomes", `{"package": `+zeroWindow+`, "carrier": `+carrierJSON+`, "success": false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, out["error"], "zero duration")
}
