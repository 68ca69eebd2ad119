package model

import (
	"time"
)

// OtpRecord is a single-use numeric code bound to an email address.
// Lifecycle: Active (issued, unused, unexpired) -> Consumed (Used flip,
// terminal) or Expired (time-based, terminal, detected lazily).
type OtpRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"size:255;not null;index:idx_email_code,unique" json:"email"`
	Code      string    `gorm:"size:6;not null;index:idx_email_code,unique" json:"code"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}

// Key returns the composite lookup key the stores index by
func (r *OtpRecord) Key() string {
	return r.Email + ":" + r.Code
}

// IsExpired reports whether the record is past its lifetime at the given instant
func (r *OtpRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
