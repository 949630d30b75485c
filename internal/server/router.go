package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/posterdesk/backend/internal/briefs"
	"github.com/posterdesk/backend/internal/settings"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

var (
	errMissingStore     = errors.New("record store dependency required")
	errMissingLifecycle = errors.New("lifecycle dependency required")
	errMissingReporter  = errors.New("reporter dependency required")
	errMissingSettings  = errors.New("settings service dependency required")
)

type confirmationContextKey struct{}

// WithConfirmation stamps the client's yes/no answer onto the context so a
// RequestConfirmer can read it back during the save.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationContextKey{}, confirmed)
}

// RequestConfirmer resolves confirmation prompts from the flag the client
// sent with the request. The wizard UI is the human-facing half: a save
// rejected with confirmation_required is re-submitted with confirmed=true
// once the user approves.
type RequestConfirmer struct{}

// Confirm reports the client's answer; an absent flag counts as declined.
func (RequestConfirmer) Confirm(ctx context.Context, _ string) (bool, error) {
	confirmed, _ := ctx.Value(confirmationContextKey{}).(bool)
	return confirmed, nil
}

// Dependencies wires the intake services into the HTTP surface.
type Dependencies struct {
	Store     *briefs.Store
	Lifecycle *briefs.Lifecycle
	Reporter  *briefs.Reporter
	Settings  *settings.Service
	Logger    *zap.Logger
}

// NewHTTPHandler builds the router the wizard UI talks to. The surface does
// no authentication; it is meant to bind loopback on the user's machine.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Store == nil {
		return nil, errMissingStore
	}
	if deps.Lifecycle == nil {
		return nil, errMissingLifecycle
	}
	if deps.Reporter == nil {
		return nil, errMissingReporter
	}
	if deps.Settings == nil {
		return nil, errMissingSettings
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		store:     deps.Store,
		lifecycle: deps.Lifecycle,
		reporter:  deps.Reporter,
		settings:  deps.Settings,
		logger:    logger,
	}

	router.POST("/briefs", handler.handleSaveBrief)
	router.GET("/briefs", handler.handleListBriefs)
	router.GET("/briefs/:id", handler.handleGetBrief)
	router.DELETE("/briefs/:id", handler.handleDeleteBrief)
	router.DELETE("/briefs", handler.handleClearBriefs)

	router.POST("/drafts/touch", handler.handleTouchDraft)
	router.POST("/drafts/autosave", handler.handleAutoSave)
	router.POST("/drafts/recover", handler.handleRecoverDraft)
	router.POST("/drafts/load", handler.handleLoadBrief)

	router.GET("/reports/stats", handler.handleStatistics)
	router.GET("/reports/export.csv", handler.handleExportCSV)

	router.GET("/settings/:key", handler.handleGetSetting)
	router.PUT("/settings/:key", handler.handlePutSetting)

	return router, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

type httpHandler struct {
	store     *briefs.Store
	lifecycle *briefs.Lifecycle
	reporter  *briefs.Reporter
	settings  *settings.Service
	logger    *zap.Logger
}

func (h *httpHandler) handleSaveBrief(c *gin.Context) {
	var request saveRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	form := request.Brief.formData()
	ctx := WithConfirmation(c.Request.Context(), request.Confirmed)

	id, err := h.lifecycle.ManualSave(ctx, form)
	if errors.Is(err, briefs.ErrSaveDeclined) {
		c.JSON(http.StatusConflict, gin.H{"error": "confirmation_required"})
		return
	}
	if err != nil {
		h.logger.Error("manual save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "progress": briefs.ComputeProgress(form)})
}

func (h *httpHandler) handleTouchDraft(c *gin.Context) {
	var request briefPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	h.lifecycle.Touch(request.formData())
	c.JSON(http.StatusAccepted, gin.H{"dirty": true})
}

func (h *httpHandler) handleAutoSave(c *gin.Context) {
	h.lifecycle.AutoSave(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"dirty": h.lifecycle.Dirty()})
}

func (h *httpHandler) handleRecoverDraft(c *gin.Context) {
	var request confirmPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	ctx := WithConfirmation(c.Request.Context(), request.Confirmed)
	draft, err := h.lifecycle.RecoverLatestDraft(ctx)
	if err != nil {
		h.logger.Error("draft recovery failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recover_failed"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"loaded": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": true, "submission": submissionPayloadFrom(*draft)})
}

func (h *httpHandler) handleLoadBrief(c *gin.Context) {
	var request loadRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil || request.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	submission, err := h.lifecycle.LoadSubmission(c.Request.Context(), request.ID)
	if err != nil {
		h.logger.Error("load submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load_failed"})
		return
	}
	if submission == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": true, "submission": submissionPayloadFrom(*submission)})
}

func (h *httpHandler) handleListBriefs(c *gin.Context) {
	status, ok := parseStatus(c.Query("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	submissions, err := h.store.ListSubmissions(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
		return
	}

	payload := make([]submissionPayload, 0, len(submissions))
	for _, submission := range submissions {
		payload = append(payload, submissionPayloadFrom(submission))
	}
	c.JSON(http.StatusOK, gin.H{"submissions": payload})
}

func (h *httpHandler) handleGetBrief(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	submission, err := h.store.GetSubmission(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed"})
		return
	}
	if submission == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, submissionPayloadFrom(*submission))
}

func (h *httpHandler) handleDeleteBrief(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	deleted, err := h.store.DeleteSubmission(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *httpHandler) handleClearBriefs(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		h.logger.Error("clear submissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear_failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleStatistics(c *gin.Context) {
	stats, err := h.reporter.GetStatistics(c.Request.Context())
	if err != nil {
		h.logger.Error("statistics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats_failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *httpHandler) handleExportCSV(c *gin.Context) {
	csv, err := h.reporter.ExportCSV(c.Request.Context())
	if errors.Is(err, briefs.ErrNoSubmissions) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no_submissions"})
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export_failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="submissions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (h *httpHandler) handleGetSetting(c *gin.Context) {
	key := c.Param("key")
	value, found, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("get setting failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "setting_failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

func (h *httpHandler) handlePutSetting(c *gin.Context) {
	var request settingPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	key := c.Param("key")
	if err := h.settings.Update(c.Request.Context(), key, request.Value); err != nil {
		h.logger.Error("update setting failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "setting_failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(raw string) (uint, bool) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parseStatus(raw string) (briefs.Status, bool) {
	switch briefs.Status(raw) {
	case "", briefs.StatusDraft, briefs.StatusSubmitted:
		return briefs.Status(raw), true
	default:
		return "", false
	}
}
