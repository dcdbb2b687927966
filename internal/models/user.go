package models

import "time"

// DefaultUserLocation is stored when a user registers without a location.
const DefaultUserLocation = "India"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"_id" bson:"_id"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"` // Never expose this to the client
	Location     string    `json:"location" bson:"location"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// DisplayName is the name embedded in session tokens.
func (u User) DisplayName() string {
	return u.FirstName
}
