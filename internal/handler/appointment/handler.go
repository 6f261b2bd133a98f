package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/service/booking"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments", auth.Authenticate(model.RolePatient))
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.ListMine)
		appointments.POST("/:id/cancel", h.Cancel)
		appointments.POST("/:id/pay", h.Pay)
	}

	doctor := r.Group("/doctor/appointments", auth.Authenticate(model.RoleDoctor))
	{
		doctor.GET("", h.ListForDoctor)
		doctor.POST("/:id/cancel", h.Cancel)
		doctor.POST("/:id/complete", h.Complete)
	}

	admin := r.Group("/admin/appointments", auth.Authenticate(model.RoleAdmin))
	{
		admin.GET("", h.ListAll)
		admin.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	appointment, err := h.service.BookSlot(
		c.Request.Context(),
		middleware.ActorID(c),
		req.DocID,
		req.SlotDate,
		req.SlotTime,
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

// Cancel serves patients, doctors and admins; the service applies the
// role-specific ownership rules.
func (h *Handler) Cancel(c *gin.Context) {
	err := h.service.Cancel(
		c.Request.Context(),
		middleware.ActorID(c),
		c.Param("id"),
		middleware.ActorRole(c),
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "appointment cancelled")
}

func (h *Handler) Complete(c *gin.Context) {
	err := h.service.Complete(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "appointment completed")
}

func (h *Handler) Pay(c *gin.Context) {
	result, err := h.service.Pay(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) ListMine(c *gin.Context) {
	appointments, err := h.service.ListForUser(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListForDoctor(c *gin.Context) {
	appointments, err := h.service.ListForDoctor(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListAll(c *gin.Context) {
	appointments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}
