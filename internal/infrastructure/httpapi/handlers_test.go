package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/infrastructure/httpapi"
	"PetitionRouter/internal/logging"
	"PetitionRouter/internal/nlp/classify"
	"PetitionRouter/internal/nlp/sentiment"
	"PetitionRouter/internal/ports"
	"PetitionRouter/internal/usecase"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(title, description string) analysis.Bundle {
	return analysis.Bundle{
		Classification: classify.Result{Category: classify.WaterSupply, Confidence: 0.9},
		Priority: sentiment.Priority{
			Level:     sentiment.PriorityHigh,
			Score:     5,
			Sentiment: sentiment.Sentiment{Compound: -0.7, Polarity: sentiment.PolarityNegative},
			Urgency:   sentiment.Urgency{Level: sentiment.UrgencyCritical, Score: 3},
		},
		Summary: "Petition: x | Category: Water Supply | Priority: high | Urgency: critical",
	}
}

type memPetitions struct {
	byPublic map[string]domain.Petition
	changes  map[int64][]domain.StatusChange
	nextID   int64
}

func newMemPetitions() *memPetitions {
	return &memPetitions{
		byPublic: map[string]domain.Petition{},
		changes:  map[int64][]domain.StatusChange{},
	}
}

func (m *memPetitions) Save(ctx context.Context, petition *domain.Petition) error {
	m.nextID++
	petition.ID = m.nextID
	m.byPublic[petition.PublicID] = *petition
	return nil
}

func (m *memPetitions) GetByPublicID(ctx context.Context, publicID string) (domain.Petition, error) {
	petition, ok := m.byPublic[publicID]
	if !ok {
		return domain.Petition{}, domain.ErrNotFound
	}
	return petition, nil
}

func (m *memPetitions) List(ctx context.Context, filter ports.PetitionFilter) ([]domain.Petition, error) {
	var out []domain.Petition
	for _, p := range m.byPublic {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPetitions) UpdateStatus(ctx context.Context, id int64, status domain.Status, resolution string, resolvedAt *time.Time) error {
	for publicID, p := range m.byPublic {
		if p.ID == id {
			p.Status = status
			p.Resolution = resolution
			p.ResolvedAt = resolvedAt
			m.byPublic[publicID] = p
		}
	}
	return nil
}

func (m *memPetitions) ListStale(ctx context.Context, status domain.Status, olderThan time.Time) ([]domain.Petition, error) {
	return nil, nil
}

func (m *memPetitions) AppendStatusChange(ctx context.Context, change domain.StatusChange) error {
	m.changes[change.PetitionID] = append(m.changes[change.PetitionID], change)
	return nil
}

func (m *memPetitions) History(ctx context.Context, petitionID int64) ([]domain.StatusChange, error) {
	return m.changes[petitionID], nil
}

type memDepartments struct{}

func (memDepartments) GetByName(ctx context.Context, name string) (domain.Department, error) {
	return domain.Department{ID: 5, Name: name}, nil
}

func (memDepartments) List(ctx context.Context) ([]domain.Department, error) {
	return []domain.Department{{ID: 5, Name: "Water Supply", Email: "water.supply@civic.local"}}, nil
}

func (memDepartments) Seed(ctx context.Context, departments []domain.Department) error { return nil }

type memNotifications struct {
	created []domain.Notification
}

func (m *memNotifications) Create(ctx context.Context, notification *domain.Notification) error {
	notification.ID = int64(len(m.created) + 1)
	m.created = append(m.created, *notification)
	return nil
}

func (m *memNotifications) ListBySubmitter(ctx context.Context, submitterID string, unreadOnly bool) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.created {
		if n.SubmitterID == submitterID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(ctx context.Context, id int64) error { return nil }

func (m *memNotifications) MarkAllRead(ctx context.Context, submitterID string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	service := usecase.NewService(usecase.ServiceDeps{
		Analyzer:      stubAnalyzer{},
		Petitions:     newMemPetitions(),
		Departments:   memDepartments{},
		Notifications: &memNotifications{},
		Logger:        logging.Discard(),
	})
	server := httpapi.NewServer(service, logging.Discard())
	return server.Router([]string{"http://localhost:3000"})
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/health", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "OK") {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestSubmitPetitionEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	body := `{"submitter_id":"citizen-1","title":"No water","description":"Still no water"}`
	recorder := doJSON(t, router, http.MethodPost, "/api/petitions", body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Message  string `json:"message"`
		Petition struct {
			PetitionID string `json:"petition_id"`
			Category   string `json:"category"`
			Priority   string `json:"priority"`
		} `json:"petition"`
		Analysis struct {
			Urgency string `json:"urgency"`
		} `json:"ai_analysis"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(response.Petition.PetitionID, "PET-") {
		t.Errorf("petition_id = %q", response.Petition.PetitionID)
	}
	if response.Petition.Category != "Water Supply" {
		t.Errorf("category = %q", response.Petition.Category)
	}
	if response.Petition.Priority != "high" {
		t.Errorf("priority = %q", response.Petition.Priority)
	}
	if response.Analysis.Urgency != "critical" {
		t.Errorf("urgency = %q", response.Analysis.Urgency)
	}
}

func TestSubmitPetitionValidation(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing fields", body: `{"title":"x"}`},
		{name: "blank description", body: `{"submitter_id":"c","title":"x","description":"   "}`},
		{name: "malformed json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/api/petitions", tt.body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestGetPetitionEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	body := `{"submitter_id":"citizen-1","title":"No water","description":"Still no water"}`
	created := doJSON(t, router, http.MethodPost, "/api/petitions", body)

	var submitted struct {
		Petition struct {
			PetitionID string `json:"petition_id"`
		} `json:"petition"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	recorder := doJSON(t, router, http.MethodGet, "/api/petitions/"+submitted.Petition.PetitionID, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"history"`) {
		t.Errorf("body missing history: %s", recorder.Body.String())
	}
}

func TestGetPetitionNotFound(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/petitions/PET-missing", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	body := `{"submitter_id":"citizen-1","title":"No water","description":"Still no water"}`
	created := doJSON(t, router, http.MethodPost, "/api/petitions", body)

	var submitted struct {
		Petition struct {
			PetitionID string `json:"petition_id"`
		} `json:"petition"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	path := "/api/petitions/" + submitted.Petition.PetitionID + "/status"
	recorder := doJSON(t, router, http.MethodPatch, path, `{"status":"resolved","comment":"done","updated_by":"officer"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"status":"resolved"`) {
		t.Errorf("body = %s", recorder.Body.String())
	}

	bad := doJSON(t, router, http.MethodPatch, path, `{"status":"launched"}`)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown status", bad.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/analyze", `{"title":"No water","description":"Still no water"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}

	var view struct {
		Category string `json:"category"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.Category != "Water Supply" || view.Priority != "high" {
		t.Errorf("view = %+v", view)
	}
}

func TestDepartmentsEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/departments", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Water Supply") {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestNotificationsEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	missing := doJSON(t, router, http.MethodGet, "/api/notifications", "")
	if missing.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without submitter", missing.Code)
	}

	body := `{"submitter_id":"citizen-1","title":"No water","description":"Still no water"}`
	if recorder := doJSON(t, router, http.MethodPost, "/api/petitions", body); recorder.Code != http.StatusCreated {
		t.Fatalf("seed petition failed: %d", recorder.Code)
	}

	recorder := doJSON(t, router, http.MethodGet, "/api/notifications?submitter=citizen-1", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "submitted") {
		t.Errorf("body = %s", recorder.Body.String())
	}

	markAll := doJSON(t, router, http.MethodPost, "/api/notifications/read-all", `{"submitter_id":"citizen-1"}`)
	if markAll.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", markAll.Code)
	}
}
