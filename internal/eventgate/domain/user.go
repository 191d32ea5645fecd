package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	Active       bool   // false until the activation token is redeemed
	Superuser    bool   // explicit escape hatch, never derived from role membership
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
