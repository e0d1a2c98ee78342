package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dfrgroup/hrms/internal/transport/http/middleware"
	"github.com/dfrgroup/hrms/internal/usecase"
)

// UsersHandler exposes the employee directory and the signed-in dashboard.
type UsersHandler struct {
	directory *usecase.DirectoryService
}

// NewUsersHandler constructs UsersHandler.
func NewUsersHandler(directory *usecase.DirectoryService) *UsersHandler {
	return &UsersHandler{directory: directory}
}

// RegisterRoutes binds the directory routes. The group is expected to carry
// session authentication already.
func (h *UsersHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users", h.list)
	r.GET("/users/:id", h.get)
	r.GET("/dashboard", h.dashboard)
}

func (h *UsersHandler) list(c *gin.Context) {
	entries, err := h.directory.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load directory"))
		return
	}

	views := make([]DirectoryEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newDirectoryEntryView(entry))
	}

	c.JSON(http.StatusOK, DirectoryListResponse{Users: views})
}

func (h *UsersHandler) get(c *gin.Context) {
	entry, err := h.directory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load user"))
		return
	}

	c.JSON(http.StatusOK, newDirectoryEntryView(*entry))
}

func (h *UsersHandler) dashboard(c *gin.Context) {
	accountID, ok := c.Get(middleware.AccountIDKey)
	accountIDStr, _ := accountID.(string)
	if !ok || accountIDStr == "" {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	dashboard, err := h.directory.DashboardFor(c.Request.Context(), accountIDStr)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load dashboard"))
		return
	}

	attempts := make([]LoginAttemptView, 0, len(dashboard.RecentAttempts))
	for _, record := range dashboard.RecentAttempts {
		attempts = append(attempts, newLoginAttemptView(record))
	}

	c.JSON(http.StatusOK, DashboardResponse{
		User:           newDirectoryEntryView(dashboard.Entry),
		RecentAttempts: attempts,
	})
}
