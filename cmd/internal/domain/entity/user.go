package entity

const (
	RoleCustomer = "customer"
	RoleAdvisor  = "advisor"
)

// User is the profile row for an authenticated identity. The primary key is
// the identity provider's subject UUID, so one identity owns exactly one row.
type User struct {
	ID              string `gorm:"primaryKey"`
	FullName        *string
	Email           *string `gorm:"uniqueIndex"`
	Phone           *string
	Address         *string
	Role            string `gorm:"not null;default:customer"`
	AvatarURL       *string
	Location        *string
	LinkedinURL     *string
	Bio             *string
	ThemePreference *string
	CreatedAt       int64 `gorm:"not null"`
	UpdatedAt       int64 `gorm:"not null"`
}
