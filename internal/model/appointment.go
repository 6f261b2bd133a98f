package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment captures a booking as a point-in-time snapshot. UserData and
// DocData are owned copies taken when the slot was reserved; later edits to
// the doctor or user do not propagate here. Appointments are never deleted,
// only flagged.
type Appointment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	DocID       primitive.ObjectID `json:"doc_id" bson:"doc_id"`
	UserData    User               `json:"user_data" bson:"user_data"`
	DocData     DoctorSnapshot     `json:"doc_data" bson:"doc_data"`
	SlotDate    string             `json:"slot_date" bson:"slot_date"`
	SlotTime    string             `json:"slot_time" bson:"slot_time"`
	Amount      float64            `json:"amount" bson:"amount"`
	Cancelled   bool               `json:"cancelled" bson:"cancelled"`
	IsCompleted bool               `json:"is_completed" bson:"is_completed"`
	Payment     bool               `json:"payment" bson:"payment"`
	Date        time.Time          `json:"date" bson:"date"`
}

type BookAppointmentRequest struct {
	DocID    string `json:"doc_id" binding:"required"`
	SlotDate string `json:"slot_date" binding:"required"`
	SlotTime string `json:"slot_time" binding:"required"`
}

type PaymentResult struct {
	TransactionID string `json:"transaction_id"`
}
