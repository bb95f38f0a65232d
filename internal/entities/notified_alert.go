package entities

import "time"

// NotifiedAlert records that an alert was already delivered to a user, so
// re-running analysis over overlapping snapshots stays idempotent.
type NotifiedAlert struct {
	ID            int `gorm:"primaryKey"`
	UserID        int64
	JobID         string
	AlertType     string
	LastCheckedAt time.Time
	CreatedAt     time.Time
}
