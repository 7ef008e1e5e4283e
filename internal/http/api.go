package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mindscript/internal/domain"
	"mindscript/internal/service"
)

const accountKey = "mindscript.account"

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AccountService
	scripts  service.ScriptService
	logger   *logrus.Logger
}

func NewHandler(accounts service.AccountService, scripts service.ScriptService, logger *logrus.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		scripts:  scripts,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.GET("/me", h.requireAuth, h.me)
			auth.POST("/logout", h.requireAuth, h.logout)
		}

		scripts := api.Group("/scripts", h.requireAuth)
		{
			scripts.POST("/generate", h.generateScript)
			scripts.GET("", h.listScripts)
			scripts.GET("/:id", h.getScript)
			scripts.DELETE("/:id", h.deleteScript)
		}
	}
}

// requireAuth verifies the Bearer token and attaches the resolved account to
// the request context.
func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
		return
	}

	account, err := h.accounts.Identify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.Set(accountKey, account)
	c.Next()
}

func currentAccount(c *gin.Context) *domain.Account {
	return c.MustGet(accountKey).(*domain.Account)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email and password are required"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	token, account, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  accountToResponse(account),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email and password are required"})
		return
	}

	token, account, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  accountToResponse(account),
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, accountToResponse(currentAccount(c)))
}

func (h *Handler) logout(c *gin.Context) {
	// Stateless tokens: nothing to revoke server-side, the client discards
	// its copy. The token stays valid until its embedded expiry.
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

type generateScriptRequest struct {
	Symptoms []string `json:"symptoms" binding:"required"`
	Tone     string   `json:"tone"`
	Duration *int     `json:"duration"`
	Title    string   `json:"title"`
}

func (h *Handler) generateScript(c *gin.Context) {
	var req generateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "symptoms must be a non-empty array"})
		return
	}

	script, err := h.scripts.Generate(c.Request.Context(), currentAccount(c).ID, service.GenerateParams{
		Symptoms:        req.Symptoms,
		Tone:            domain.Tone(req.Tone),
		DurationMinutes: req.Duration,
		Title:           req.Title,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scriptToResponse(*script))
}

func (h *Handler) listScripts(c *gin.Context) {
	scripts, err := h.scripts.List(c.Request.Context(), currentAccount(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ScriptResponse, len(scripts))
	for i := range scripts {
		resp[i] = scriptToResponse(scripts[i])
	}
	c.JSON(http.StatusOK, gin.H{"scripts": resp, "total": len(resp)})
}

func (h *Handler) getScript(c *gin.Context) {
	script, err := h.scripts.Get(c.Request.Context(), currentAccount(c).ID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, scriptToResponse(*script))
}

func (h *Handler) deleteScript(c *gin.Context) {
	if err := h.scripts.Delete(c.Request.Context(), currentAccount(c).ID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Script deleted"})
}

// writeError maps service error kinds to status codes. Anything unrecognized
// is an internal failure reported without detail.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrScriptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type AccountResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type ScriptResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Symptoms  []string `json:"symptoms"`
	Tone      string   `json:"tone"`
	Duration  int      `json:"duration"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func accountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

func scriptToResponse(script domain.Script) ScriptResponse {
	return ScriptResponse{
		ID:        script.ID,
		UserID:    script.OwnerID,
		Title:     script.Title,
		Symptoms:  script.Symptoms,
		Tone:      string(script.Tone),
		Duration:  script.DurationMinutes,
		Content:   script.Body,
		CreatedAt: script.CreatedAt.Format(time.RFC3339),
		UpdatedAt: script.UpdatedAt.Format(time.RFC3339),
	}
}
