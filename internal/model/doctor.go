package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is stored inline on doctors and users.
type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2,omitempty" bson:"line2,omitempty"`
}

// Doctor is the persisted doctor document. SlotsBooked maps a date key
// (day_month_year, no zero padding) to the list of reserved time strings
// (HH:MM AM/PM) for that date. A missing date key means no bookings that day.
type Doctor struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Email       string              `json:"email,omitempty" bson:"email"`
	Password    string              `json:"-" bson:"password"`
	Image       string              `json:"image" bson:"image"`
	Speciality  string              `json:"speciality" bson:"speciality"`
	Degree      string              `json:"degree" bson:"degree"`
	Experience  string              `json:"experience" bson:"experience"`
	About       string              `json:"about" bson:"about"`
	Available   bool                `json:"available" bson:"available"`
	Fees        float64             `json:"fees" bson:"fees"`
	Address     Address             `json:"address" bson:"address"`
	SlotsBooked map[string][]string `json:"slots_booked" bson:"slots_booked"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}

// DoctorSnapshot is the denormalized doctor copy embedded in an appointment
// at booking time. It is owned by the appointment and never refreshed.
type DoctorSnapshot struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Speciality string             `json:"speciality" bson:"speciality"`
	Fees       float64            `json:"fees" bson:"fees"`
	Address    Address            `json:"address" bson:"address"`
	Image      string             `json:"image" bson:"image"`
	Degree     string             `json:"degree" bson:"degree"`
	Experience string             `json:"experience" bson:"experience"`
	About      string             `json:"about" bson:"about"`
}

// Snapshot copies the booking-relevant doctor fields.
func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Speciality: d.Speciality,
		Fees:       d.Fees,
		Address:    d.Address,
		Image:      d.Image,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
	}
}

type AddDoctorRequest struct {
	Name       string  `form:"name" binding:"required"`
	Email      string  `form:"email" binding:"required,email"`
	Password   string  `form:"password" binding:"required,min=8"`
	Speciality string  `form:"speciality" binding:"required"`
	Degree     string  `form:"degree" binding:"required"`
	Experience string  `form:"experience" binding:"required"`
	About      string  `form:"about" binding:"required"`
	Fees       float64 `form:"fees" binding:"required,gt=0"`
	Address    string  `form:"address" binding:"required"`
}

type UpdateDoctorProfileRequest struct {
	Fees      *float64 `json:"fees" binding:"omitempty,gt=0"`
	Address   *Address `json:"address"`
	Available *bool    `json:"available"`
}
