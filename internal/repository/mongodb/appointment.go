package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medibook/medibook-api/internal/model"
	apperr "github.com/medibook/medibook-api/pkg/errors"
)

type appointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *appointmentRepository {
	return &appointmentRepository{coll: db.Collection("appointments")}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.ID = primitive.NewObjectID()
	if appointment.Date.IsZero() {
		appointment.Date = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("appointment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) SetCancelled(ctx context.Context, id primitive.ObjectID) error {
	return r.setFlag(ctx, id, "cancelled")
}

func (r *appointmentRepository) SetCompleted(ctx context.Context, id primitive.ObjectID) error {
	return r.setFlag(ctx, id, "is_completed")
}

func (r *appointmentRepository) SetPaid(ctx context.Context, id primitive.ObjectID) error {
	return r.setFlag(ctx, id, "payment")
}

func (r *appointmentRepository) setFlag(ctx context.Context, id primitive.ObjectID, field string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: true}},
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("appointment")
	}
	return nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Appointment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, docID primitive.ObjectID) ([]*model.Appointment, error) {
	return r.find(ctx, bson.M{"doc_id": docID})
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.find(ctx, bson.M{})
}

// find returns appointments in natural (insertion) order; dashboard
// aggregation relies on that ordering rather than a date sort.
func (r *appointmentRepository) find(ctx context.Context, filter bson.M) ([]*model.Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}
