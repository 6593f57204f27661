package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inboxfolio/inboxfolio/app/database"
	"github.com/inboxfolio/inboxfolio/app/email"
)

const (
	// maxSlugParamLength rejects absurd lookup keys before they reach the
	// store; no legitimate slug is this long.
	maxSlugParamLength = 200

	excerptLength = 160
)

func NewHandler(emailRepo database.EmailRepository, ingestor *email.Ingestor) *Handler {
	return &Handler{
		emailRepo: emailRepo,
		ingestor:  ingestor,
	}
}

func (h *Handler) ListEmails(c *gin.Context) {
	emails, err := h.emailRepo.GetAllEmails()
	if err != nil {
		slog.Error("Database error", "operation", "list_emails", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emails"})
		return
	}

	summaries := make([]EmailSummary, 0, len(emails))
	for _, e := range emails {
		summaries = append(summaries, EmailSummary{
			EmailResponse: newEmailResponse(e),
			Excerpt:       email.Excerpt(e, excerptLength),
		})
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) GetEmailBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" || len(slug) > maxSlugParamLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug format"})
		return
	}

	stored, err := h.emailRepo.GetEmailBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_email", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email"})
		return
	}

	if stored == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		return
	}

	c.JSON(http.StatusOK, newEmailResponse(*stored))
}

func (h *Handler) CreateEmail(c *gin.Context) {
	var payload email.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	stored, err := h.ingestor.Run(payload)
	if err != nil {
		var missingErr *email.MissingFieldsError
		switch {
		case errors.As(err, &missingErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing required fields",
				"missing": missingErr.Fields,
			})
		case email.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, email.ErrSlugConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "An email with a conflicting slug was created concurrently, please retry"})
		default:
			slog.Error("Failed to create email", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create email"})
		}
		return
	}

	c.JSON(http.StatusCreated, newEmailResponse(*stored))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if emailCount, err := h.emailRepo.GetEmailCount(); err == nil {
		health["emails"] = emailCount
	}

	c.JSON(http.StatusOK, health)
}
