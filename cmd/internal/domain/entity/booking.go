package entity

const (
	BookingStatusScheduled = "scheduled"
)

// Booking is a scheduled advisory session. Rows are insert-only; there is no
// edit or cancel path in this codebase.
type Booking struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"not null;index"` // References: users(id)
	AdvisorID     string `gorm:"not null;index"` // References: users(id)
	SessionTime   int64  `gorm:"not null"`
	SessionLength int    `gorm:"not null"`
	Status        string `gorm:"not null;default:scheduled"`
	Notes         *string
	CreatedAt     int64 `gorm:"not null"`

	// Relations
	BookedBy User `gorm:"foreignKey:UserID;references:ID"`
	Advisor  User `gorm:"foreignKey:AdvisorID;references:ID"`
}
