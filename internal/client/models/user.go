// Package models holds the data types shared by HealthKeeper services and
// repositories.
package models

import "time"

// User identifies an account. Email is the identity key and is always stored
// lowercased and trimmed.
type User struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential is the stored account record: the user plus a bcrypt hash of
// the password. Keyed by the normalized email.
type Credential struct {
	User           User   `json:"user"`
	HashedPassword string `json:"hashedPassword"`
}
