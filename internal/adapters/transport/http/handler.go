package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webxtars/vybh-backend/internal/adapters/transport/http/dto"
	authsvc "github.com/webxtars/vybh-backend/internal/app/auth/service"
	usersvc "github.com/webxtars/vybh-backend/internal/app/user/service"
	authErrors "github.com/webxtars/vybh-backend/internal/domain/auth/errors"
)

type Handler struct {
	auth  authsvc.Service
	users usersvc.Service
	log   *zap.Logger
}

func NewHandler(auth authsvc.Service, users usersvc.Service, log *zap.Logger) *Handler {
	return &Handler{auth: auth, users: users, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
	}

	user := r.Group("/user")
	{
		user.GET("", h.listUsers)
		// gin cannot mix static and param segments at one level, so
		// /user/email/:email and /user/username/:username are routed
		// through the same wildcard pair and dispatched on "key"
		user.GET("/:key", h.getUserByID)
		user.GET("/:key/:value", h.getUserByKey)
		user.PATCH("/update/:id", h.updateUser)
		user.POST("/create", h.createUser)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, count, err := h.users.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":   users,
		"count":   count,
		"message": "Users fetched successfully",
	})
}

func (h *Handler) getUserByID(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User fetched successfully"})
}

func (h *Handler) getUserByKey(c *gin.Context) {
	var (
		user any
		err  error
	)
	switch c.Param("key") {
	case "email":
		user, err = h.users.GetByEmail(c.Request.Context(), c.Param("value"))
	case "username":
		user, err = h.users.GetByUsername(c.Request.Context(), c.Param("value"))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User fetched successfully"})
}

func (h *Handler) updateUser(c *gin.Context) {
	var body dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User updated successfully"})
}

func (h *Handler) createUser(c *gin.Context) {
	var body dto.CreateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User created successfully"})
}

// handleError maps the error taxonomy onto status codes. Internal
// detail stays in the logs; the caller gets a fixed message.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credentials"})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.log.Error("unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
