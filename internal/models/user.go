package models

type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
}
