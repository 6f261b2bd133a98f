package dashboard

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	apperr "github.com/medibook/medibook-api/pkg/errors"
)

const latestCount = 5

type Service struct {
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) *Service {
	return &Service{
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
	}
}

// AdminOverview returns platform-wide counts and the five most recently
// created appointments.
func (s *Service) AdminOverview(ctx context.Context) (*model.AdminDashboard, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return &model.AdminDashboard{
		Doctors:            len(doctors),
		Appointments:       len(appointments),
		Patients:           len(users),
		LatestAppointments: latestFirst(appointments, latestCount),
	}, nil
}

// DoctorOverview returns a single doctor's earnings, appointment and unique
// patient counts, and their five most recent appointments. Earnings counts
// the amount of every appointment that is completed or paid, so a completed
// but unpaid appointment still contributes.
func (s *Service) DoctorOverview(ctx context.Context, docID string) (*model.DoctorDashboard, error) {
	oid, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return nil, apperr.Validation("invalid doctor id")
	}

	appointments, err := s.appointmentRepo.ListByDoctor(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	var earnings float64
	patients := make(map[string]struct{})
	for _, appt := range appointments {
		if appt.IsCompleted || appt.Payment {
			earnings += appt.Amount
		}
		patients[appt.UserID.Hex()] = struct{}{}
	}

	return &model.DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appointments),
		Patients:           len(patients),
		LatestAppointments: latestFirst(appointments, latestCount),
	}, nil
}

// latestFirst reverses the store's insertion order and truncates. Ordering
// follows insertion, not the appointment date field.
func latestFirst(appointments []*model.Appointment, n int) []*model.Appointment {
	latest := make([]*model.Appointment, 0, n)
	for i := len(appointments) - 1; i >= 0 && len(latest) < n; i-- {
		latest = append(latest, appointments[i])
	}
	return latest
}
