package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"portfolio-api/database"
	"portfolio-api/metrics"
	"portfolio-api/middleware"
	"portfolio-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

const (
	msgTitleRequired    = "Title is required"
	msgInvalidID        = "Invalid portfolio ID"
	msgInvalidBody      = "Invalid request body"
	msgNotFound         = "포트폴리오를 찾을 수 없습니다."
	msgNoFieldsToUpdate = "업데이트할 필드가 없습니다."
	msgCreated          = "포트폴리오가 성공적으로 생성되었습니다."
	msgUpdated          = "포트폴리오가 성공적으로 수정되었습니다."
	msgDeleted          = "포트폴리오가 성공적으로 삭제되었습니다."
	msgInternalError    = "Internal server error"
)

// PortfolioStore is the persistence the portfolio handlers need.
// *database.DB satisfies it.
type PortfolioStore interface {
	ListPortfolios(ctx context.Context, params models.ListParams) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, error)
	PortfolioExists(ctx context.Context, id int64) (bool, error)
	CreatePortfolio(ctx context.Context, p models.NewPortfolio) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id int64, req models.UpdatePortfolioRequest) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id int64) error
}

type PortfolioHandler struct {
	store   PortfolioStore
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewPortfolioHandler(store PortfolioStore, log zerolog.Logger, m *metrics.Metrics) *PortfolioHandler {
	return &PortfolioHandler{
		store:   store,
		log:     log,
		metrics: m,
	}
}

// RegisterRoutes mounts the portfolio endpoints under /api/portfolios.
// A trailing slash with no id is the list resource too.
func (h *PortfolioHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/portfolios")
	g.GET("", h.ListPortfolios)
	g.GET("/", h.ListPortfolios)
	g.POST("", h.CreatePortfolio)
	g.POST("/", h.CreatePortfolio)
	g.GET("/:id", h.GetPortfolio)
	g.PUT("/:id", h.UpdatePortfolio)
	g.DELETE("/:id", h.DeletePortfolio)
}

func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portfolios, err := h.store.ListPortfolios(c.Request.Context(), params)
	if err != nil {
		h.internalError(c, "ListPortfolios", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    portfolios,
		Count:   len(portfolios),
	})
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req models.CreatePortfolioRequest
	if err := bindBody(c, &req); err != nil {
		h.log.Debug().Err(err).Msg("create: bind error")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return
	}

	portfolio, err := h.store.CreatePortfolio(c.Request.Context(), req.NewPortfolio())
	if err != nil {
		h.internalError(c, "CreatePortfolio", err)
		return
	}

	h.metrics.RecordMutation("create")
	c.JSON(http.StatusCreated, models.ItemResponse{
		Success: true,
		Data:    portfolio,
		Message: msgCreated,
	})
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	portfolio, err := h.store.GetPortfolio(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		h.internalError(c, "GetPortfolio", err)
		return
	}

	c.JSON(http.StatusOK, models.ItemResponse{
		Success: true,
		Data:    portfolio,
	})
}

// UpdatePortfolio applies a partial update. The body is validated before the
// store is touched, so an empty update is a 400 whether or not the id exists.
// The existence check and the UPDATE are separate statements.
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdatePortfolioRequest
	if err := bindBody(c, &req); err != nil {
		h.log.Debug().Err(err).Int64("id", id).Msg("update: bind error")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	if err := req.Validate(); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFieldsToUpdate})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		}
		return
	}

	ctx := c.Request.Context()
	if !h.requireExists(c, id) {
		return
	}

	portfolio, err := h.store.UpdatePortfolio(ctx, id, req)
	if err != nil {
		if errors.Is(err, database.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		h.internalError(c, "UpdatePortfolio", err)
		return
	}

	h.metrics.RecordMutation("update")
	c.JSON(http.StatusOK, models.ItemResponse{
		Success: true,
		Data:    portfolio,
		Message: msgUpdated,
	})
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !h.requireExists(c, id) {
		return
	}

	if err := h.store.DeletePortfolio(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		h.internalError(c, "DeletePortfolio", err)
		return
	}

	h.metrics.RecordMutation("delete")
	c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: msgDeleted,
	})
}

// requireExists writes the 404 (or 500) response itself and reports whether
// the caller may continue.
func (h *PortfolioHandler) requireExists(c *gin.Context, id int64) bool {
	exists, err := h.store.PortfolioExists(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "PortfolioExists", err)
		return false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return false
	}
	return true
}

func (h *PortfolioHandler) internalError(c *gin.Context, op string, err error) {
	h.log.Error().
		Err(err).
		Str("op", op).
		Str("request_id", middleware.GetRequestID(c)).
		Msg("portfolio request failed")

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   msgInternalError,
		"message": err.Error(),
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return id, true
}

// bindBody decodes a JSON body into obj. An empty body decodes as {}.
func bindBody(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return binding.JSON.BindBody(body, obj)
}
