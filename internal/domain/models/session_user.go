package model

type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
