package entity

// Advisor is the optional extended row for users with the advisor role.
// Its absence is a normal state, not an error.
type Advisor struct {
	ID           string `gorm:"primaryKey"` // References: users(id)
	CalendlyLink *string
	CreatedAt    int64 `gorm:"not null"`

	// Relations
	Owner User `gorm:"foreignKey:ID;references:ID"`
}
