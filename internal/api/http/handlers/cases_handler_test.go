package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/escalation-service/internal/api/http"
	"github.com/spec-kit/escalation-service/internal/api/http/handlers"
	"github.com/spec-kit/escalation-service/internal/domain"
	"github.com/spec-kit/escalation-service/internal/identity"
	"github.com/spec-kit/escalation-service/internal/repository"
	"github.com/spec-kit/escalation-service/internal/service"
)

type memoryCaseRepo struct {
	cases []domain.Case
}

func (m *memoryCaseRepo) Load(ctx context.Context) ([]domain.Case, error) {
	out := make([]domain.Case, len(m.cases))
	copy(out, m.cases)
	return out, nil
}

func (m *memoryCaseRepo) Save(ctx context.Context, cases []domain.Case) error {
	m.cases = make([]domain.Case, len(cases))
	copy(m.cases, cases)
	return nil
}

var _ repository.CaseRepository = (*memoryCaseRepo)(nil)

const testSecret = "test-secret"

func newTestApp(repo *memoryCaseRepo, today time.Time) *fiber.App {
	svc := service.NewCaseService(service.CaseDependencies{
		CaseRepo: repo,
		Now:      func() time.Time { return today },
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("escalation-service", "test", nil, nil),
		Cases:    handlers.NewCasesHandler(svc),
		Me:       handlers.NewMeHandler(),
		Identity: identity.NewResolver(testSecret),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCreateCaseEndpoint(t *testing.T) {
	repo := &memoryCaseRepo{}
	app := newTestApp(repo, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))

	resp, body := doJSON(t, app, http.MethodPost, "/cases", map[string]string{
		"org_number":     "990011",
		"department":     "Finance",
		"date_escalated": "2024-01-01",
		"description":    "missing invoice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "2024-01-10", data["due_date"])
	assert.Equal(t, "open", data["status"])
	require.Len(t, repo.cases, 1)
}

func TestCreateCaseEndpointValidation(t *testing.T) {
	repo := &memoryCaseRepo{}
	app := newTestApp(repo, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))

	resp, body := doJSON(t, app, http.MethodPost, "/cases", map[string]string{
		"department": "Finance",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.Empty(t, repo.cases)
}

func TestListCasesEndpointDefaultsToOpen(t *testing.T) {
	repo := &memoryCaseRepo{cases: []domain.Case{
		{ID: "c1", OrgNumber: "990011", Department: "Finance", DateEscalated: "2024-01-01", DueDate: "2024-01-10", Status: domain.CaseStatusOpen},
		{ID: "c2", OrgNumber: "880022", Department: "HR", DateEscalated: "2024-01-02", DueDate: "2024-01-11", Status: domain.CaseStatusReturned},
	}}
	app := newTestApp(repo, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC))

	resp, body := doJSON(t, app, http.MethodGet, "/cases", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := body["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "c1", item["id"])
	assert.Equal(t, float64(5), item["days"])
	assert.Equal(t, "warning", item["bucket"])
	assert.Equal(t, "5 business days (warning)", item["aging_label"])
	assert.Equal(t, true, item["highlight"])
}

func TestListCasesEndpointReturnedHasNoSeverity(t *testing.T) {
	repo := &memoryCaseRepo{cases: []domain.Case{
		{ID: "c2", OrgNumber: "880022", Department: "HR", DateEscalated: "2024-01-01", DueDate: "2024-01-10", Status: domain.CaseStatusReturned},
	}}
	app := newTestApp(repo, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC))

	resp, body := doJSON(t, app, http.MethodGet, "/cases?filter=returned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := body["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, false, item["highlight"])
	assert.Equal(t, "5 business days", item["aging_label"])
	_, hasBucket := item["bucket"]
	assert.False(t, hasBucket)
}

func TestListCasesEndpointRejectsUnknownFilter(t *testing.T) {
	app := newTestApp(&memoryCaseRepo{}, time.Now())

	resp, body := doJSON(t, app, http.MethodGet, "/cases?filter=closed", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestUpdateStatusEndpoint(t *testing.T) {
	repo := &memoryCaseRepo{cases: []domain.Case{
		{ID: "c1", OrgNumber: "990011", Department: "Finance", DateEscalated: "2024-01-01", DueDate: "2024-01-10", Status: domain.CaseStatusOpen},
	}}
	app := newTestApp(repo, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC))

	resp, _ := doJSON(t, app, http.MethodPatch, "/cases/c1/status", map[string]string{"status": "returned"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.CaseStatusReturned, repo.cases[0].Status)

	// Unknown id is an idempotent no-op, not an error.
	resp, _ = doJSON(t, app, http.MethodPatch, "/cases/missing/status", map[string]string{"status": "open"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteCaseEndpoint(t *testing.T) {
	repo := &memoryCaseRepo{cases: []domain.Case{
		{ID: "c1", OrgNumber: "990011", Department: "Finance", DateEscalated: "2024-01-01", DueDate: "2024-01-10", Status: domain.CaseStatusOpen},
	}}
	app := newTestApp(repo, time.Now())

	resp, _ := doJSON(t, app, http.MethodDelete, "/cases/c1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.cases)

	resp, _ = doJSON(t, app, http.MethodDelete, "/cases/c1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMeEndpoint(t *testing.T) {
	app := newTestApp(&memoryCaseRepo{}, time.Now())

	resp, body := doJSON(t, app, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["authenticated"])
	assert.Equal(t, "", data["display_name"])

	token, err := identity.NewResolver(testSecret).Issue("user-1", "Kari Nordmann", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rawResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rawResp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rawResp.Body).Decode(&decoded))
	data = decoded["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "Kari Nordmann", data["display_name"])
}

func TestHealthLiveEndpoint(t *testing.T) {
	app := newTestApp(&memoryCaseRepo{}, time.Now())

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}
