package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/service/dashboard"
	"github.com/medibook/medibook-api/internal/service/doctor"
	"github.com/medibook/medibook-api/internal/upload"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type Handler struct {
	doctors   *doctor.Service
	dashboard *dashboard.Service
	uploads   upload.Store
}

func NewHandler(doctors *doctor.Service, dashboard *dashboard.Service, uploads upload.Store) *Handler {
	return &Handler{doctors: doctors, dashboard: dashboard, uploads: uploads}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	admin := r.Group("/admin", auth.Authenticate(model.RoleAdmin))
	{
		admin.POST("/doctors", h.AddDoctor)
		admin.GET("/doctors", h.ListDoctors)
		admin.POST("/doctors/:id/availability", h.ToggleAvailability)
		admin.GET("/dashboard", h.Dashboard)
	}
}

// AddDoctor accepts a multipart form carrying the doctor fields plus the
// profile image.
func (h *Handler) AddDoctor(c *gin.Context) {
	var req model.AddDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: "doctor image is required"})
		return
	}
	imageURL, err := h.uploads.Save(file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	created, err := h.doctors.AddDoctor(c.Request.Context(), &req, imageURL)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, created)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctors.ListAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) ToggleAvailability(c *gin.Context) {
	if err := h.doctors.ToggleAvailability(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "availability changed")
}

func (h *Handler) Dashboard(c *gin.Context) {
	overview, err := h.dashboard.AdminOverview(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, overview)
}
