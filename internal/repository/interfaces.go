package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
)

// All repository interfaces in one file
type (
	// DoctorRepository handles doctor documents, including the per-doctor
	// slots_booked map. UpdateSlots overwrites the whole map on the stored
	// document; it is intentionally not an atomic append (last writer wins).
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		UpdateSlots(ctx context.Context, id primitive.ObjectID, slots map[string][]string) error
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
	}

	// AppointmentRepository stores booking snapshots. Appointments are never
	// deleted; state changes go through the flag setters.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error)
		SetCancelled(ctx context.Context, id primitive.ObjectID) error
		SetCompleted(ctx context.Context, id primitive.ObjectID) error
		SetPaid(ctx context.Context, id primitive.ObjectID) error
		ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, docID primitive.ObjectID) ([]*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
	}
)
