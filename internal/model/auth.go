package model

// Role identifies the kind of actor a token was issued to.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// TokenClaims is the verified identity handed to services by the auth
// middleware. Subject is the actor's document id, empty for admins.
type TokenClaims struct {
	Subject string `json:"sub"`
	Role    Role   `json:"role"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
