package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	authservice "github.com/medibook/medibook-api/internal/service/auth"
	"github.com/medibook/medibook-api/internal/service/booking"
	"github.com/medibook/medibook-api/pkg/auth"
	apperr "github.com/medibook/medibook-api/pkg/errors"
	"github.com/medibook/medibook-api/pkg/httputil"
)

type fakeDoctorRepo struct {
	repository.DoctorRepository
	doctor *model.Doctor
}

func (r *fakeDoctorRepo) Get(_ context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	if r.doctor == nil || r.doctor.ID != id {
		return nil, apperr.NotFound("doctor")
	}
	copied := *r.doctor
	slots := make(map[string][]string, len(r.doctor.SlotsBooked))
	for date, times := range r.doctor.SlotsBooked {
		slots[date] = append([]string(nil), times...)
	}
	copied.SlotsBooked = slots
	return &copied, nil
}

func (r *fakeDoctorRepo) UpdateSlots(_ context.Context, id primitive.ObjectID, slots map[string][]string) error {
	if r.doctor == nil || r.doctor.ID != id {
		return apperr.NotFound("doctor")
	}
	r.doctor.SlotsBooked = slots
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	user *model.User
}

func (r *fakeUserRepo) Get(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, apperr.NotFound("user")
	}
	copied := *r.user
	return &copied, nil
}

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	appointments []*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *model.Appointment) error {
	appointment.ID = primitive.NewObjectID()
	copied := *appointment
	r.appointments = append(r.appointments, &copied)
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.ID == id {
			copied := *appointment
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("appointment")
}

func (r *fakeAppointmentRepo) SetCancelled(_ context.Context, id primitive.ObjectID) error {
	for _, appointment := range r.appointments {
		if appointment.ID == id {
			appointment.Cancelled = true
			return nil
		}
	}
	return apperr.NotFound("appointment")
}

func (r *fakeAppointmentRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, appointment := range r.appointments {
		if appointment.UserID == userID {
			out = append(out, appointment)
		}
	}
	return out, nil
}

type noopHasher struct{}

func (noopHasher) Hash(password string) (string, error)  { return password, nil }
func (noopHasher) Compare(hashed, password string) error { return nil }

type testServer struct {
	engine       *gin.Engine
	jwtSvc       *auth.JWTService
	doctors      *fakeDoctorRepo
	users        *fakeUserRepo
	appointments *fakeAppointmentRepo
	doctor       *model.Doctor
	user         *model.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doctor := &model.Doctor{
		ID:        primitive.NewObjectID(),
		Name:      "Dr. Richard James",
		Fees:      500,
		Available: true,
	}
	user := &model.User{
		ID:    primitive.NewObjectID(),
		Name:  "John Carter",
		Email: "john@medibook.local",
	}

	doctors := &fakeDoctorRepo{doctor: doctor}
	users := &fakeUserRepo{user: user}
	appointments := &fakeAppointmentRepo{}

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	authSvc := authservice.NewService(users, doctors, jwtSvc, noopHasher{}, authservice.AdminCredentials{})
	bookingSvc := booking.NewService(doctors, users, appointments, nil, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewHandler(bookingSvc).RegisterRoutes(api, middleware.NewAuthMiddleware(authSvc))

	return &testServer{
		engine:       engine,
		jwtSvc:       jwtSvc,
		doctors:      doctors,
		users:        users,
		appointments: appointments,
		doctor:       doctor,
		user:         user,
	}
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, httputil.Response) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *testServer) patientToken(t *testing.T) string {
	t.Helper()
	token, err := s.jwtSvc.GenerateToken(s.user.ID.Hex(), model.RolePatient)
	require.NoError(t, err)
	return token
}

func TestBookEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.patientToken(t)

	rec, resp := s.request(t, http.MethodPost, "/api/v1/appointments", token, map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(500), data["amount"])
	assert.Equal(t, "5_9_2026", data["slot_date"])
}

func TestBookEndpointSlotTaken(t *testing.T) {
	s := newTestServer(t)
	token := s.patientToken(t)

	body := map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	}

	_, first := s.request(t, http.MethodPost, "/api/v1/appointments", token, body)
	require.True(t, first.Success)

	// domain failures keep a 200 status with the failure envelope
	rec, resp := s.request(t, http.MethodPost, "/api/v1/appointments", token, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "slot not available", resp.Message)
}

func TestBookEndpointMissingFields(t *testing.T) {
	s := newTestServer(t)
	token := s.patientToken(t)

	rec, resp := s.request(t, http.MethodPost, "/api/v1/appointments", token, map[string]string{
		"doc_id": s.doctor.ID.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestBookEndpointRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.request(t, http.MethodPost, "/api/v1/appointments", "", map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestBookEndpointRejectsDoctorRole(t *testing.T) {
	s := newTestServer(t)

	token, err := s.jwtSvc.GenerateToken(s.doctor.ID.Hex(), model.RoleDoctor)
	require.NoError(t, err)

	rec, _ := s.request(t, http.MethodPost, "/api/v1/appointments", token, map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.patientToken(t)

	_, booked := s.request(t, http.MethodPost, "/api/v1/appointments", token, map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	})
	require.True(t, booked.Success)
	apptID := booked.Data.(map[string]interface{})["id"].(string)

	rec, resp := s.request(t, http.MethodPost, "/api/v1/appointments/"+apptID+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "appointment cancelled", resp.Message)

	assert.Empty(t, s.doctors.doctor.SlotsBooked["5_9_2026"])
}

func TestListMineEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.patientToken(t)

	_, booked := s.request(t, http.MethodPost, "/api/v1/appointments", token, map[string]string{
		"doc_id":    s.doctor.ID.Hex(),
		"slot_date": "5_9_2026",
		"slot_time": "10:00 AM",
	})
	require.True(t, booked.Success)

	rec, resp := s.request(t, http.MethodGet, "/api/v1/appointments", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.([]interface{}), 1)
}
