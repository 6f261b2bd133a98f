package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/service/auth"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/user/register", h.RegisterUser)
	r.POST("/user/login", h.LoginUser)
	r.POST("/doctor/login", h.LoginDoctor)
	r.POST("/admin/login", h.LoginAdmin)
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	token, err := h.service.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, token)
}

func (h *Handler) LoginUser(c *gin.Context) {
	h.login(c, h.service.LoginUser)
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	h.login(c, h.service.LoginDoctor)
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	h.login(c, h.service.LoginAdmin)
}

func (h *Handler) login(c *gin.Context, fn func(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	token, err := fn(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, token)
}
