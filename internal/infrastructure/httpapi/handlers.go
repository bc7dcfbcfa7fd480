package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/ports"
	"PetitionRouter/internal/usecase"
)

type submitRequest struct {
	SubmitterID string `json:"submitter_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type analyzeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type statusRequest struct {
	Status    string `json:"status" binding:"required"`
	Comment   string `json:"comment"`
	UpdatedBy string `json:"updated_by"`
}

type petitionView struct {
	PetitionID  string     `json:"petition_id"`
	SubmitterID string     `json:"submitter_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Sentiment   float64    `json:"sentiment_score"`
	Urgency     string     `json:"urgency_level"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type analysisView struct {
	Category       string             `json:"category"`
	Confidence     float64            `json:"confidence"`
	Distribution   map[string]float64 `json:"distribution,omitempty"`
	Priority       string             `json:"priority"`
	PriorityScore  int                `json:"priority_score"`
	Sentiment      float64            `json:"sentiment"`
	Polarity       string             `json:"polarity"`
	Urgency        string             `json:"urgency"`
	UrgencyScore   int                `json:"urgency_score"`
	MatchedKeyword []string           `json:"urgency_keywords,omitempty"`
	Entities       entitiesView       `json:"entities"`
	Keywords       []string           `json:"keywords,omitempty"`
	Summary        string             `json:"summary"`
	NormalizedText string             `json:"normalized_text"`
}

type entitiesView struct {
	Dates         []string `json:"dates,omitempty"`
	PhoneNumbers  []string `json:"phone_numbers,omitempty"`
	Emails        []string `json:"emails,omitempty"`
	Locations     []string `json:"locations,omitempty"`
	Names         []string `json:"names,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
}

func (s *Server) submitPetition(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submitter_id, title and description are required"})
		return
	}

	result, err := s.service.Submit(c.Request.Context(), usecase.SubmitRequest{
		SubmitterID: req.SubmitterID,
		Title:       req.Title,
		Description: req.Description,
	})
	if errors.Is(err, usecase.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("submit petition", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit petition"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Petition submitted successfully",
		"petition":    toPetitionView(result.Petition),
		"ai_analysis": toAnalysisView(result.Analysis),
	})
}

func (s *Server) getPetition(c *gin.Context) {
	petition, history, err := s.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "petition not found"})
		return
	}
	if err != nil {
		s.logger.Error("get petition", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load petition"})
		return
	}

	historyView := make([]gin.H, 0, len(history))
	for _, change := range history {
		historyView = append(historyView, gin.H{
			"status":     string(change.Status),
			"comment":    change.Comment,
			"updated_by": change.UpdatedBy,
			"timestamp":  change.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"petition": toPetitionView(petition),
		"history":  historyView,
	})
}

func (s *Server) listPetitions(c *gin.Context) {
	filter := ports.PetitionFilter{
		Status:      domain.Status(c.Query("status")),
		Priority:    domain.Priority(c.Query("priority")),
		SubmitterID: c.Query("submitter"),
	}
	if raw := c.Query("department_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "department_id must be numeric"})
			return
		}
		filter.DepartmentID = id
	}

	petitions, err := s.service.List(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("list petitions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list petitions"})
		return
	}

	views := make([]petitionView, 0, len(petitions))
	for _, petition := range petitions {
		views = append(views, toPetitionView(petition))
	}
	c.JSON(http.StatusOK, gin.H{"petitions": views, "total": len(views)})
}

var validStatuses = map[domain.Status]bool{
	domain.StatusSubmitted:  true,
	domain.StatusInReview:   true,
	domain.StatusInProgress: true,
	domain.StatusResolved:   true,
	domain.StatusRejected:   true,
}

func (s *Server) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	status := domain.Status(req.Status)
	if !validStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + req.Status})
		return
	}

	petition, err := s.service.UpdateStatus(c.Request.Context(), c.Param("id"), status, req.Comment, req.UpdatedBy)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "petition not found"})
		return
	}
	if err != nil {
		s.logger.Error("update status", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"petition": toPetitionView(petition)})
}

func (s *Server) analyzePreview(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return
	}

	bundle := s.service.Analyze(req.Title, req.Description)
	c.JSON(http.StatusOK, toAnalysisView(bundle))
}

func (s *Server) listDepartments(c *gin.Context) {
	departments, err := s.service.Departments(c.Request.Context())
	if err != nil {
		s.logger.Error("list departments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list departments"})
		return
	}

	views := make([]gin.H, 0, len(departments))
	for _, department := range departments {
		views = append(views, gin.H{
			"id":          department.ID,
			"name":        department.Name,
			"description": department.Description,
			"email":       department.Email,
		})
	}
	c.JSON(http.StatusOK, gin.H{"departments": views})
}

func (s *Server) listNotifications(c *gin.Context) {
	submitter := c.Query("submitter")
	if submitter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submitter query parameter is required"})
		return
	}

	notifications, err := s.service.Notifications(c.Request.Context(), submitter, c.Query("unread_only") == "true")
	if err != nil {
		s.logger.Error("list notifications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notifications"})
		return
	}

	views := make([]gin.H, 0, len(notifications))
	for _, notification := range notifications {
		views = append(views, gin.H{
			"id":          notification.ID,
			"petition_id": notification.PetitionID,
			"message":     notification.Message,
			"read":        notification.Read,
			"created_at":  notification.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": views})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification id must be numeric"})
		return
	}

	if err := s.service.MarkNotificationRead(c.Request.Context(), id); err != nil {
		s.logger.Error("mark notification read", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	var req struct {
		SubmitterID string `json:"submitter_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submitter_id is required"})
		return
	}

	if err := s.service.MarkAllNotificationsRead(c.Request.Context(), req.SubmitterID); err != nil {
		s.logger.Error("mark all notifications read", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}

func toPetitionView(petition domain.Petition) petitionView {
	return petitionView{
		PetitionID:  petition.PublicID,
		SubmitterID: petition.SubmitterID,
		Title:       petition.Title,
		Description: petition.Description,
		Category:    petition.Category,
		Priority:    string(petition.Priority),
		Sentiment:   petition.Sentiment,
		Urgency:     string(petition.Urgency),
		Status:      string(petition.Status),
		Resolution:  petition.Resolution,
		CreatedAt:   petition.CreatedAt,
		UpdatedAt:   petition.UpdatedAt,
		ResolvedAt:  petition.ResolvedAt,
	}
}

func toAnalysisView(bundle analysis.Bundle) analysisView {
	var distribution map[string]float64
	if len(bundle.Classification.Distribution) > 0 {
		distribution = make(map[string]float64, len(bundle.Classification.Distribution))
		for _, score := range bundle.Classification.Distribution {
			distribution[score.Category.String()] = score.Probability
		}
	}

	return analysisView{
		Category:       bundle.Classification.Category.String(),
		Confidence:     bundle.Classification.Confidence,
		Distribution:   distribution,
		Priority:       string(bundle.Priority.Level),
		PriorityScore:  bundle.Priority.Score,
		Sentiment:      bundle.Priority.Sentiment.Compound,
		Polarity:       string(bundle.Priority.Sentiment.Polarity),
		Urgency:        string(bundle.Priority.Urgency.Level),
		UrgencyScore:   bundle.Priority.Urgency.Score,
		MatchedKeyword: bundle.Priority.Urgency.MatchedKeywords,
		Entities: entitiesView{
			Dates:         bundle.Entities.Dates,
			PhoneNumbers:  bundle.Entities.PhoneNumbers,
			Emails:        bundle.Entities.Emails,
			Locations:     bundle.Entities.Locations,
			Names:         bundle.Entities.Names,
			Organizations: bundle.Entities.Organizations,
		},
		Keywords:       bundle.Keywords,
		Summary:        bundle.Summary,
		NormalizedText: bundle.NormalizedText,
	}
}
