// internal/domain/user/entity.go
package user

import "time"

// Login types and roles mirror the enum columns on the users table.
const (
	LoginTypeEmail  = "email"
	LoginTypeGoogle = "google"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	LoginType    string    `json:"login_type" db:"login_type"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
