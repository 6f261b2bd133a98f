package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted patient document. Profile fields are mutable by
// the owning user only.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Image     string             `json:"image" bson:"image"`
	Phone     string             `json:"phone" bson:"phone"`
	Address   Address            `json:"address" bson:"address"`
	DOB       string             `json:"dob" bson:"dob"`
	Gender    string             `json:"gender" bson:"gender"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Snapshot copies the user record for embedding in an appointment. The
// password hash is stripped from the copy.
func (u *User) Snapshot() User {
	snap := *u
	snap.Password = ""
	return snap
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    string `form:"name" binding:"required"`
	Phone   string `form:"phone" binding:"required"`
	Address string `form:"address"`
	DOB     string `form:"dob" binding:"required"`
	Gender  string `form:"gender" binding:"required"`
}
