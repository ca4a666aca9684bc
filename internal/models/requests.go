package models

// TaskRequest is the incoming JSON for create and rename. DueDate is optional;
// on rename an absent dueDate clears any stored one, so there is no omitempty
// merge logic here on purpose.
type TaskRequest struct {
	Title   string `json:"title" validate:"notblank,max=100"`
	DueDate *Date  `json:"dueDate"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register, login and the OAuth callback.
type AuthResponse struct {
	Token string `json:"token"`
}
