package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	apperr "github.com/medibook/medibook-api/pkg/errors"
	"github.com/medibook/medibook-api/pkg/messaging"
	"github.com/medibook/medibook-api/pkg/payment"
)

// Event channels published on the message broker.
const (
	ChannelBooked    = "appointment.booked"
	ChannelCancelled = "appointment.cancelled"
)

// Event is the payload published for booking lifecycle changes.
type Event struct {
	Type        string             `json:"type"`
	Appointment *model.Appointment `json:"appointment"`
}

type Service struct {
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	gateway         payment.Gateway
	broker          messaging.Broker
}

func NewService(
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	gateway payment.Gateway,
	broker messaging.Broker,
) *Service {
	return &Service{
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		broker:          broker,
	}
}

// BookSlot reserves a (slotDate, slotTime) pair against a doctor and creates
// the appointment snapshot. The slot check and the slot write are two
// separate round trips against the doctor document with no transaction or
// conditional update between them, so two concurrent calls for the same free
// slot can both succeed; the last UpdateSlots writer wins.
func (s *Service) BookSlot(ctx context.Context, userID, docID, slotDate, slotTime string) (*model.Appointment, error) {
	if userID == "" || docID == "" || slotDate == "" || slotTime == "" {
		return nil, apperr.Validation("all fields are required (userId, docId, slotDate, slotTime)")
	}

	docOID, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return nil, apperr.Validation("invalid doctor id")
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	doctor, err := s.doctorRepo.Get(ctx, docOID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, apperr.Unavailable("doctor")
	}

	slots := doctor.SlotsBooked
	if slots == nil {
		slots = make(map[string][]string)
	}
	for _, booked := range slots[slotDate] {
		if booked == slotTime {
			return nil, apperr.SlotTaken()
		}
	}
	slots[slotDate] = append(slots[slotDate], slotTime)

	user, err := s.userRepo.Get(ctx, userOID)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		UserID:   userOID,
		DocID:    docOID,
		UserData: user.Snapshot(),
		DocData:  doctor.Snapshot(),
		SlotDate: slotDate,
		SlotTime: slotTime,
		Amount:   doctor.Fees,
		Date:     time.Now(),
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.doctorRepo.UpdateSlots(ctx, docOID, slots); err != nil {
		return nil, fmt.Errorf("failed to save booked slots: %w", err)
	}

	s.publish(ctx, ChannelBooked, appointment)

	return appointment, nil
}

// Cancel marks an appointment cancelled and releases its slot. Cancelling an
// already-cancelled appointment re-applies the flag without error. If the
// doctor document is gone the appointment stays cancelled but the slot is
// never released.
func (s *Service) Cancel(ctx context.Context, actorID, appointmentID string, role model.Role) error {
	apptOID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}

	appointment, err := s.appointmentRepo.Get(ctx, apptOID)
	if err != nil {
		return err
	}

	switch role {
	case model.RolePatient:
		if appointment.UserID.Hex() != actorID {
			return apperr.Unauthorized("")
		}
	case model.RoleDoctor:
		if appointment.DocID.Hex() != actorID {
			return apperr.Unauthorized("")
		}
	case model.RoleAdmin:
		// admins may cancel any appointment
	default:
		return apperr.Unauthorized("")
	}

	if err := s.appointmentRepo.SetCancelled(ctx, apptOID); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, appointment.DocID)
	if err != nil {
		return err
	}

	slots := doctor.SlotsBooked
	if slots == nil {
		slots = make(map[string][]string)
	}
	released := slots[appointment.SlotDate][:0]
	for _, booked := range slots[appointment.SlotDate] {
		if booked != appointment.SlotTime {
			released = append(released, booked)
		}
	}
	slots[appointment.SlotDate] = released

	if err := s.doctorRepo.UpdateSlots(ctx, appointment.DocID, slots); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	appointment.Cancelled = true
	s.publish(ctx, ChannelCancelled, appointment)

	return nil
}

// Complete marks an appointment completed. Only the assigned doctor may do
// so. The slot stays consumed.
func (s *Service) Complete(ctx context.Context, docID, appointmentID string) error {
	apptOID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}

	appointment, err := s.appointmentRepo.Get(ctx, apptOID)
	if err != nil {
		return err
	}
	if appointment.DocID.Hex() != docID {
		return apperr.Unauthorized("")
	}

	if err := s.appointmentRepo.SetCompleted(ctx, apptOID); err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}
	return nil
}

// Pay charges the appointment amount through the payment gateway. A declined
// charge leaves the appointment untouched.
func (s *Service) Pay(ctx context.Context, userID, appointmentID string) (*model.PaymentResult, error) {
	apptOID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, apperr.Validation("invalid appointment id")
	}

	appointment, err := s.appointmentRepo.Get(ctx, apptOID)
	if err != nil {
		return nil, err
	}
	if appointment.UserID.Hex() != userID {
		return nil, apperr.Unauthorized("")
	}
	if appointment.Payment {
		return nil, apperr.Validation("payment already completed")
	}
	if appointment.Cancelled {
		return nil, apperr.Validation("cannot pay for cancelled appointment")
	}

	txnID, err := s.gateway.Charge(ctx, appointment.Amount)
	if err != nil {
		return nil, apperr.Validation("payment failed, please try again")
	}

	if err := s.appointmentRepo.SetPaid(ctx, apptOID); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return &model.PaymentResult{TransactionID: txnID}, nil
}

// ListForUser returns every appointment booked by the user.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}
	return s.appointmentRepo.ListByUser(ctx, oid)
}

// ListForDoctor returns every appointment assigned to the doctor.
func (s *Service) ListForDoctor(ctx context.Context, docID string) ([]*model.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return nil, apperr.Validation("invalid doctor id")
	}
	return s.appointmentRepo.ListByDoctor(ctx, oid)
}

// ListAll returns every appointment on the platform.
func (s *Service) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointmentRepo.List(ctx)
}

func (s *Service) publish(ctx context.Context, channel string, appointment *model.Appointment) {
	if s.broker == nil {
		return
	}
	event := Event{Type: channel, Appointment: appointment}
	if err := s.broker.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to publish booking event")
	}
}
