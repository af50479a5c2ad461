package domain

import "time"

// User представляет зарегистрированный аккаунт
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt хеш, наружу не отдается
	CreatedAt    time.Time `json:"created_at"`
}
