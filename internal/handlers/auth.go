package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/dto"
	apierrors "github.com/taskhub/task-system/internal/errors"
	"github.com/taskhub/task-system/internal/middleware"
	"github.com/taskhub/task-system/internal/services"
)

// AuthHandler coordinates registration and session handlers.
type AuthHandler struct {
	authService      *services.AuthService
	dashboardService *services.DashboardService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, dashboardService *services.DashboardService) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		dashboardService: dashboardService,
	}
}

// RegisterForm serves the data the signup form needs (the position
// vocabulary to choose from).
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	positions, err := h.dashboardService.ListPositions()
	if err != nil {
		apierrors.InternalError(c, "Failed to load positions")
		return
	}

	positionDTOs := make([]dto.PositionDTO, len(positions))
	for i, position := range positions {
		positionDTOs[i] = dto.ToPositionDTO(position)
	}

	c.JSON(http.StatusOK, gin.H{"positions": positionDTOs})
}

// Register creates a worker from the signup form and logs the session in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username  string `form:"username" json:"username" binding:"required"`
		Email     string `form:"email" json:"email" binding:"required,email"`
		FirstName string `form:"first_name" json:"first_name"`
		LastName  string `form:"last_name" json:"last_name"`
		Position  uint64 `form:"position" json:"position" binding:"required"`
		Password1 string `form:"password1" json:"password1" binding:"required"`
		Password2 string `form:"password2" json:"password2" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.authService.Register(services.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PositionID: req.Position,
		Password1:  req.Password1,
		Password2:  req.Password2,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyWorkerID, worker.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, constants.IndexPath)
}

// LoginForm answers GET requests on the login path.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Login required"})
}

// Login authenticates a worker and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyWorkerID, worker.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, constants.IndexPath)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Redirect(http.StatusFound, constants.LoginPath)
}

// GetCurrentWorker returns the authenticated worker.
func (h *AuthHandler) GetCurrentWorker(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	worker, err := h.authService.GetWorker(workerID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	workerDTO := dto.ToWorkerDTO(*worker)
	c.JSON(http.StatusOK, workerDTO)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPositionNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrWorkerNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
