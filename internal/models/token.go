package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// AuthToken is an opaque API token row. Only a sha256 digest of the secret
// half is stored; the plaintext "<id>|<secret>" form is shown to the client
// exactly once, at issuance. A user may hold several tokens at a time
// (multi-session) and logout deletes them all together.
type AuthToken struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	TokenHash string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
