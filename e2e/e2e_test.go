//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./e2e/... -v
//
// These tests:
//   T-E2E-1: Sync creates tracking snapshots and serves the customer view
//   T-E2E-2: Re-sync is idempotent on values but bumps updated_at
//   T-E2E-3: Role enforcement on sync triggers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"woodtrack/internal/config"
	"woodtrack/internal/infra"
	"woodtrack/internal/model"
	"woodtrack/internal/router"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

// ── Helpers ──────────────────────────────────────────────────────────────────

func mintToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   role + "@e2e.test",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func do(t *testing.T, srv *httptest.Server, method, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	staff  string // staff JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("woodtrack_test"),
		tcPostgres.WithUsername("woodtrack"),
		tcPostgres.WithPassword("woodtrack"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:              8000,
		Env:               "test",
		JWTSecret:         testSecret,
		DatabaseURL:       pgURL,
		RedisURL:          rdURL,
		WorkerPoolSize:    1,
		ReportStoragePath: t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		db:     db,
		staff:  mintToken(t, "staff"),
	}
}

func seedProduction(t *testing.T, db *gorm.DB, orderID uuid.UUID) *model.Production {
	t.Helper()
	started := time.Now().AddDate(0, 0, -2)
	p := &model.Production{
		OrderID:             orderID,
		ProductID:           uuid.New(),
		ProductName:         "Dining Table Oak",
		ProductType:         "custom",
		CurrentStage:        "Assembly",
		Status:              model.ProductionInProgress,
		Quantity:            1,
		Priority:            "normal",
		RequiresTracking:    true,
		ProductionStartedAt: &started,
	}
	require.NoError(t, db.Create(p).Error)

	processes := []model.ProductionProcess{
		{ProductionID: p.ID, ProcessName: "Material Preparation", ProcessOrder: 1, Status: model.ProcessCompleted, EstimatedDurationMinutes: 24 * 60},
		{ProductionID: p.ID, ProcessName: "Cutting & Shaping", ProcessOrder: 2, Status: model.ProcessCompleted, EstimatedDurationMinutes: 36 * 60},
		{ProductionID: p.ID, ProcessName: "Assembly", ProcessOrder: 3, Status: model.ProcessInProgress, EstimatedDurationMinutes: 48 * 60},
		{ProductionID: p.ID, ProcessName: "Finishing", ProcessOrder: 4, Status: model.ProcessPending, EstimatedDurationMinutes: 36 * 60},
	}
	require.NoError(t, db.Create(&processes).Error)
	return p
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: Sync creates tracking snapshots and serves the customer view
func TestE2E_SyncAndCustomerView(t *testing.T) {
	env := setupTestEnv(t)

	orderID := uuid.New()
	seedProduction(t, env.db, orderID)

	// Trigger a synchronous sync
	syncResp := do(t, env.server, "POST", "/v1/orders/"+orderID.String()+"/sync", env.staff)
	require.Equal(t, http.StatusOK, syncResp.StatusCode)
	var sync struct {
		Results []struct {
			Created      bool    `json:"created"`
			Status       string  `json:"status"`
			CurrentStage string  `json:"current_stage"`
			Progress     float64 `json:"progress"`
		} `json:"results"`
	}
	decodeJSON(t, syncResp, &sync)
	require.Len(t, sync.Results, 1)
	assert.True(t, sync.Results[0].Created)
	assert.Equal(t, "in_production", sync.Results[0].Status)
	assert.Equal(t, "Assembly", sync.Results[0].CurrentStage)
	// (100 + 100 + 50 + 0) / 4
	assert.Equal(t, 62.5, sync.Results[0].Progress)

	// Customer view renders the live timeline
	custResp := do(t, env.server, "GET", "/v1/orders/"+orderID.String()+"/tracking/customer", env.staff)
	require.Equal(t, http.StatusOK, custResp.StatusCode)
	var cust struct {
		Items []struct {
			ProductName string `json:"product_name"`
			Status      string `json:"status"`
			Timeline    []struct {
				Stage  string `json:"stage"`
				Status string `json:"status"`
			} `json:"timeline"`
		} `json:"items"`
	}
	decodeJSON(t, custResp, &cust)
	require.Len(t, cust.Items, 1)
	assert.Equal(t, "Dining Table Oak", cust.Items[0].ProductName)
	require.Len(t, cust.Items[0].Timeline, 4)
	assert.Equal(t, "Material Preparation", cust.Items[0].Timeline[0].Stage)
	assert.Equal(t, "in_progress", cust.Items[0].Timeline[2].Status)
}

// T-E2E-2: Re-sync is idempotent on values but bumps updated_at
func TestE2E_ResyncBumpsTimestamp(t *testing.T) {
	env := setupTestEnv(t)

	orderID := uuid.New()
	seedProduction(t, env.db, orderID)

	resp := do(t, env.server, "POST", "/v1/orders/"+orderID.String()+"/sync", env.staff)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var before model.OrderTracking
	require.NoError(t, env.db.First(&before, "order_id = ?", orderID).Error)

	time.Sleep(50 * time.Millisecond)

	resp = do(t, env.server, "POST", "/v1/orders/"+orderID.String()+"/sync", env.staff)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var after model.OrderTracking
	require.NoError(t, env.db.First(&after, "order_id = ?", orderID).Error)

	assert.Equal(t, before.CurrentStage, after.CurrentStage)
	assert.Equal(t, before.Status, after.Status)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

// T-E2E-3: Role enforcement on sync triggers
func TestE2E_SyncRequiresStaffRole(t *testing.T) {
	env := setupTestEnv(t)

	orderID := uuid.New()
	customer := mintToken(t, "customer")

	resp := do(t, env.server, "POST", "/v1/orders/"+orderID.String()+"/sync", customer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/orders/"+orderID.String()+"/sync", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
