package schema

import "time"

// User represents the users table - marketplace identities keyed by a stable
// external principal (wallet address or dev-assigned handle)
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Principal is the caller's stable external identity string
	Principal string `gorm:"column:principal;not null;uniqueIndex;type:text"`
	// Codename is the display name shown in feeds and listings
	Codename *string `gorm:"column:codename;type:text"`
	// AvatarURL is an optional profile image location
	AvatarURL *string `gorm:"column:avatar_url;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// DisplayName returns the codename when set, falling back to the principal
func (u *User) DisplayName() string {
	if u.Codename != nil && *u.Codename != "" {
		return *u.Codename
	}
	return u.Principal
}
