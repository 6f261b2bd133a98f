package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/service/dashboard"
	"github.com/medibook/medibook-api/internal/service/doctor"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type Handler struct {
	service   *doctor.Service
	dashboard *dashboard.Service
}

func NewHandler(service *doctor.Service, dashboard *dashboard.Service) *Handler {
	return &Handler{service: service, dashboard: dashboard}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	// the public doctor listing backs the patient-facing catalogue
	r.GET("/doctors", h.PublicList)

	doctors := r.Group("/doctor", auth.Authenticate(model.RoleDoctor))
	{
		doctors.GET("/profile", h.Profile)
		doctors.PUT("/profile", h.UpdateProfile)
		doctors.GET("/dashboard", h.Dashboard)
	}
}

func (h *Handler) PublicList(c *gin.Context) {
	doctors, err := h.service.PublicList(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), middleware.ActorID(c), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "profile updated")
}

func (h *Handler) Dashboard(c *gin.Context) {
	overview, err := h.dashboard.DoctorOverview(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, overview)
}
