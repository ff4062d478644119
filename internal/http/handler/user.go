package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bugdesk.app/api-server/internal/http/dto"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	tokens      *TokenProvider
}

func NewUserHandler(userService service.UserService, tokens *TokenProvider) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens}
}

func (h *UserHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and role are required"})
		return
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(ctx, actorID(c), req.Username, req.Password, role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.tokens.setAuthCookie(c, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to issue session token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.tokens.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *UserHandler) Me(c *gin.Context) {
	id := actorID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListDevelopers(c *gin.Context) {
	devs, err := h.userService.ListDevelopers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(devs))
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
