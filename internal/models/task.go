package models

import "time"

// Task categories accepted by the API.
const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
	CategoryOther    = "other"
)

// Task belongs to the user that created it. Slug is derived from the title
// exactly once, at creation; title changes never regenerate it.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Finished    bool      `json:"finished" gorm:"not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
