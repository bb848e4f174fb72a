package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

type Booking struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Date   string `db:"date" json:"date"`
	Time   string `db:"time" json:"time"`
	Status string `db:"status" json:"status"`
}
