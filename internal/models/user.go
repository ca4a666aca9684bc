package models

// RoleUser is the role every registered account starts with.
const RoleUser = "USER"

// User represents a stored account. The password is only ever kept hashed.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
