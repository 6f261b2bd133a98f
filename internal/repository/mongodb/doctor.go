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

type doctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *doctorRepository {
	return &doctorRepository{coll: db.Collection("doctors")}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.ID = primitive.NewObjectID()
	doctor.CreatedAt = time.Now()
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = make(map[string][]string)
	}

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = make(map[string][]string)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doctor.ID}, doctor)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("doctor")
	}
	return nil
}

// UpdateSlots overwrites the slots_booked field of the stored document.
// This is a plain last-write-wins $set, not a guarded array append.
func (r *doctorRepository) UpdateSlots(ctx context.Context, id primitive.ObjectID, slots map[string][]string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"slots_booked": slots}},
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor slots: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("doctor")
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*model.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}
