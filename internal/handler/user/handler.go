package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/service/user"
	"github.com/medibook/medibook-api/internal/upload"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
	uploads upload.Store
}

func NewHandler(service *user.Service, uploads upload.Store) *Handler {
	return &Handler{service: service, uploads: uploads}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := r.Group("/user", auth.Authenticate(model.RolePatient))
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

// UpdateProfile accepts a multipart form so the profile image can be
// replaced in the same request.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.Response{Success: false, Message: err.Error()})
		return
	}

	var imageURL string
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = h.uploads.Save(file)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
	}

	if err := h.service.UpdateProfile(c.Request.Context(), middleware.ActorID(c), &req, imageURL); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "profile updated")
}
