package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lead-digest/internal/digest"
	"lead-digest/internal/models"
	"lead-digest/pkg/logger"
)

// Analyzer is the pipeline the handlers delegate to.
type Analyzer interface {
	Summarize(ctx context.Context, url string) (models.SummaryResponse, error)
	Keywords(ctx context.Context, url string) (models.KeywordsResponse, error)
}

// NewRouter constructs a Gin engine with registered routes. homePage is
// served verbatim on GET /.
func NewRouter(svc Analyzer, homePage []byte, l *logger.Logger) *gin.Engine {
	if l == nil {
		l = logger.Nop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), logRequest(l), echoRequestHeaders, cors.New(corsConfig()))

	h := &handlers{svc: svc, page: homePage}
	r.GET("/", h.home)
	r.GET("/health", h.health)
	r.POST("/summarize_url", h.summarize)
	r.POST("/keywords", h.keywords)
	return r
}

// The service is a public demo without auth: any origin may call it, with
// credentials. The origin is reflected because "*" cannot carry credentials.
// AllowHeaders stays empty; echoRequestHeaders answers it per preflight.
func corsConfig() cors.Config {
	return cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}
}

// echoRequestHeaders allows whatever headers a preflight asks for. It must
// run before the cors handler, which writes the preflight response.
func echoRequestHeaders(c *gin.Context) {
	if c.Request.Method != http.MethodOptions || c.GetHeader("Origin") == "" {
		return
	}
	if h := c.GetHeader("Access-Control-Request-Headers"); h != "" {
		c.Header("Access-Control-Allow-Headers", h)
	}
}

func logRequest(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

type handlers struct {
	svc  Analyzer
	page []byte
}

func (h *handlers) home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /summarize_url  { "url": "https://..." }
func (h *handlers) summarize(c *gin.Context) {
	var req models.DigestRequest
	if !bindRequest(c, &req) {
		return
	}
	res, err := h.svc.Summarize(c.Request.Context(), *req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /keywords  { "url": "https://..." }
func (h *handlers) keywords(c *gin.Context) {
	var req models.DigestRequest
	if !bindRequest(c, &req) {
		return
	}
	res, err := h.svc.Keywords(c.Request.Context(), *req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func bindRequest(c *gin.Context, req *models.DigestRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "invalid payload: " + err.Error()})
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), models.ErrorResponse{Detail: err.Error()})
}

// statusFor maps pipeline errors to HTTP codes. Fetch failures and anything
// unexpected are 500s.
func statusFor(err error) int {
	var (
		nc *digest.NoContentError
		er *digest.EmptyResultError
	)
	if errors.As(err, &nc) || errors.As(err, &er) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
