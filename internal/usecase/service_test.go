package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/logging"
	"PetitionRouter/internal/nlp/classify"
	"PetitionRouter/internal/nlp/sentiment"
	"PetitionRouter/internal/ports"
	"PetitionRouter/internal/usecase"
)

type fakeAnalyzer struct {
	bundle analysis.Bundle
}

func (f *fakeAnalyzer) Analyze(title, description string) analysis.Bundle {
	return f.bundle
}

type fakePetitions struct {
	saved    []*domain.Petition
	changes  []domain.StatusChange
	byPublic map[string]domain.Petition
	stale    []domain.Petition
	nextID   int64
}

func newFakePetitions() *fakePetitions {
	return &fakePetitions{byPublic: map[string]domain.Petition{}}
}

func (f *fakePetitions) Save(ctx context.Context, petition *domain.Petition) error {
	f.nextID++
	petition.ID = f.nextID
	f.saved = append(f.saved, petition)
	f.byPublic[petition.PublicID] = *petition
	return nil
}

func (f *fakePetitions) GetByPublicID(ctx context.Context, publicID string) (domain.Petition, error) {
	petition, ok := f.byPublic[publicID]
	if !ok {
		return domain.Petition{}, domain.ErrNotFound
	}
	return petition, nil
}

func (f *fakePetitions) List(ctx context.Context, filter ports.PetitionFilter) ([]domain.Petition, error) {
	var out []domain.Petition
	for _, p := range f.saved {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePetitions) UpdateStatus(ctx context.Context, id int64, status domain.Status, resolution string, resolvedAt *time.Time) error {
	for publicID, p := range f.byPublic {
		if p.ID == id {
			p.Status = status
			p.Resolution = resolution
			p.ResolvedAt = resolvedAt
			f.byPublic[publicID] = p
		}
	}
	return nil
}

func (f *fakePetitions) ListStale(ctx context.Context, status domain.Status, olderThan time.Time) ([]domain.Petition, error) {
	return f.stale, nil
}

func (f *fakePetitions) AppendStatusChange(ctx context.Context, change domain.StatusChange) error {
	f.changes = append(f.changes, change)
	return nil
}

func (f *fakePetitions) History(ctx context.Context, petitionID int64) ([]domain.StatusChange, error) {
	var out []domain.StatusChange
	for _, change := range f.changes {
		if change.PetitionID == petitionID {
			out = append(out, change)
		}
	}
	return out, nil
}

type fakeDepartments struct {
	byName map[string]domain.Department
}

func (f *fakeDepartments) GetByName(ctx context.Context, name string) (domain.Department, error) {
	department, ok := f.byName[name]
	if !ok {
		return domain.Department{}, domain.ErrNotFound
	}
	return department, nil
}

func (f *fakeDepartments) List(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	for _, department := range f.byName {
		out = append(out, department)
	}
	return out, nil
}

func (f *fakeDepartments) Seed(ctx context.Context, departments []domain.Department) error {
	return nil
}

type fakeNotifications struct {
	created []domain.Notification
}

func (f *fakeNotifications) Create(ctx context.Context, notification *domain.Notification) error {
	notification.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotifications) ListBySubmitter(ctx context.Context, submitterID string, unreadOnly bool) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.created {
		if n.SubmitterID == submitterID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id int64) error { return nil }

func (f *fakeNotifications) MarkAllRead(ctx context.Context, submitterID string) error { return nil }

type fakeAlerts struct {
	published []domain.Alert
}

func (f *fakeAlerts) PublishAlert(ctx context.Context, alert domain.Alert) error {
	f.published = append(f.published, alert)
	return nil
}

func highPriorityBundle() analysis.Bundle {
	return analysis.Bundle{
		Classification: classify.Result{Category: classify.WaterSupply, Confidence: 0.9},
		Priority: sentiment.Priority{
			Level: sentiment.PriorityHigh,
			Score: 5,
			Sentiment: sentiment.Sentiment{
				Compound: -0.7,
				Polarity: sentiment.PolarityNegative,
			},
			Urgency: sentiment.Urgency{Level: sentiment.UrgencyCritical, Score: 3},
		},
		Summary: "Petition: test | Category: Water Supply | Priority: high | Urgency: critical",
	}
}

func newService(analyzer ports.Analyzer, petitions *fakePetitions, departments *fakeDepartments, notifications *fakeNotifications, alerts *fakeAlerts) *usecase.Service {
	return usecase.NewService(usecase.ServiceDeps{
		Analyzer:      analyzer,
		Petitions:     petitions,
		Departments:   departments,
		Notifications: notifications,
		Alerts:        alerts,
		Logger:        logging.Discard(),
	})
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	departments := &fakeDepartments{byName: map[string]domain.Department{
		"Water Supply": {ID: 5, Name: "Water Supply"},
	}}
	notifications := &fakeNotifications{}
	alerts := &fakeAlerts{}
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, departments, notifications, alerts)

	result, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "No water supply",
		Description: "There has been no water for three days",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	petition := result.Petition
	if !strings.HasPrefix(petition.PublicID, "PET-") {
		t.Errorf("PublicID = %q, want PET- prefix", petition.PublicID)
	}
	if petition.DepartmentID != 5 {
		t.Errorf("DepartmentID = %d, want 5", petition.DepartmentID)
	}
	if petition.Category != "Water Supply" {
		t.Errorf("Category = %q, want Water Supply", petition.Category)
	}
	if petition.Priority != domain.PriorityHigh {
		t.Errorf("Priority = %q, want high", petition.Priority)
	}
	if petition.Status != domain.StatusSubmitted {
		t.Errorf("Status = %q, want submitted", petition.Status)
	}

	if len(petitions.changes) != 1 {
		t.Fatalf("status changes = %d, want 1", len(petitions.changes))
	}
	if petitions.changes[0].Comment != "Petition submitted and routed automatically" {
		t.Errorf("status comment = %q", petitions.changes[0].Comment)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications.created))
	}
	if !strings.Contains(notifications.created[0].Message, petition.PublicID) {
		t.Errorf("notification message %q does not mention petition id", notifications.created[0].Message)
	}

	if len(alerts.published) != 1 {
		t.Fatalf("alerts = %d, want 1 for high priority", len(alerts.published))
	}
	if alerts.published[0].PetitionID != petition.PublicID {
		t.Errorf("alert petition = %q, want %q", alerts.published[0].PetitionID, petition.PublicID)
	}
}

func TestSubmitRejectsBlankInput(t *testing.T) {
	t.Parallel()

	service := newService(&fakeAnalyzer{}, newFakePetitions(), &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	tests := []struct {
		name        string
		title       string
		description string
	}{
		{name: "empty title", title: "", description: "something"},
		{name: "empty description", title: "something", description: ""},
		{name: "whitespace only", title: "   ", description: "\t"},
		{name: "markup only", title: "<p></p>", description: "<br>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), usecase.SubmitRequest{
				Title:       tt.title,
				Description: tt.description,
			})
			if !errors.Is(err, usecase.ErrInvalidInput) {
				t.Errorf("Submit() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSubmitStripsMarkup(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	result, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "<b>Broken</b> lamp",
		Description: "<script>alert(1)</script>The lamp is broken",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if result.Petition.Title != "Broken lamp" {
		t.Errorf("Title = %q, want markup stripped", result.Petition.Title)
	}
	if result.Petition.Description != "The lamp is broken" {
		t.Errorf("Description = %q, want script content removed", result.Petition.Description)
	}
}

func TestSubmitToleratesMissingDepartment(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	result, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "No water",
		Description: "Still no water",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Petition.DepartmentID != 0 {
		t.Errorf("DepartmentID = %d, want 0 when department is unknown", result.Petition.DepartmentID)
	}
}

func TestSubmitSkipsAlertForLowPriority(t *testing.T) {
	t.Parallel()

	bundle := highPriorityBundle()
	bundle.Priority.Level = sentiment.PriorityLow
	alerts := &fakeAlerts{}
	service := newService(&fakeAnalyzer{bundle: bundle}, newFakePetitions(), &fakeDepartments{}, &fakeNotifications{}, alerts)

	_, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "Small pothole",
		Description: "A pothole formed on our lane",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(alerts.published) != 0 {
		t.Errorf("alerts = %d, want 0 for low priority", len(alerts.published))
	}
}

func TestUpdateStatusResolved(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	notifications := &fakeNotifications{}
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, &fakeDepartments{}, notifications, &fakeAlerts{})

	result, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "No water",
		Description: "Still no water",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), result.Petition.PublicID,
		domain.StatusResolved, "Pipeline repaired", "officer-7")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	if updated.Status != domain.StatusResolved {
		t.Errorf("Status = %q, want resolved", updated.Status)
	}
	if updated.Resolution != "Pipeline repaired" {
		t.Errorf("Resolution = %q", updated.Resolution)
	}
	if updated.ResolvedAt == nil {
		t.Error("ResolvedAt is nil, want set")
	}

	if len(petitions.changes) != 2 {
		t.Fatalf("status changes = %d, want 2", len(petitions.changes))
	}
	last := notifications.created[len(notifications.created)-1]
	if !strings.Contains(last.Message, "resolved") {
		t.Errorf("notification %q does not mention new status", last.Message)
	}
}

func TestUpdateStatusUnknownPetition(t *testing.T) {
	t.Parallel()

	service := newService(&fakeAnalyzer{}, newFakePetitions(), &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	_, err := service.UpdateStatus(context.Background(), "PET-missing", domain.StatusInReview, "", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrNotFound", err)
	}
}

func TestGetReturnsHistory(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	result, err := service.Submit(context.Background(), usecase.SubmitRequest{
		SubmitterID: "citizen-1",
		Title:       "No water",
		Description: "Still no water",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	petition, history, err := service.Get(context.Background(), result.Petition.PublicID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if petition.PublicID != result.Petition.PublicID {
		t.Errorf("PublicID = %q, want %q", petition.PublicID, result.Petition.PublicID)
	}
	if len(history) != 1 {
		t.Errorf("history = %d, want 1", len(history))
	}
}

func TestAnalyzePreviewDoesNotPersist(t *testing.T) {
	t.Parallel()

	petitions := newFakePetitions()
	service := newService(&fakeAnalyzer{bundle: highPriorityBundle()}, petitions, &fakeDepartments{}, &fakeNotifications{}, &fakeAlerts{})

	bundle := service.Analyze("No water", "Still no water")
	if bundle.Classification.Category != classify.WaterSupply {
		t.Errorf("Category = %v, want WaterSupply", bundle.Classification.Category)
	}
	if len(petitions.saved) != 0 {
		t.Errorf("saved petitions = %d, want 0", len(petitions.saved))
	}
}
