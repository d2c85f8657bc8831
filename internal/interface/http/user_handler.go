package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/stibodx/user-directory/internal/application"
	"github.com/stibodx/user-directory/internal/domain/apperr"
	"github.com/stibodx/user-directory/pkg/response"
	"github.com/stibodx/user-directory/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Create handles POST /users. Field-level validation happens at binding
// time; uniqueness and everything else is the service's call.
func (h *UserHandler) Create(c *gin.Context) {
	var dto userapp.UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	created, err := h.Svc.CreateUser(c.Request.Context(), &dto)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "user created", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	u, err := h.Svc.FindByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	u, err := h.Svc.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

// List handles GET /users?page=&size= with zero-based pages.
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid page parameter", nil)
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid size parameter", nil)
		return
	}

	result, err := h.Svc.FindAllPaginated(c.Request.Context(), page, size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "users", nil)
}

func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// renderError owns the exhaustive error-kind to status mapping. The
// service never sees HTTP.
func (h *UserHandler) renderError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case apperr.KindAlreadyExists:
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case apperr.KindInvalidEmail, apperr.KindInvalidArgument:
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
