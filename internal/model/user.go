package model

import "time"

// User is an account in the users service. PasswordHash never leaves the
// repository/service boundary; API responses use the json-tagged fields only.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
