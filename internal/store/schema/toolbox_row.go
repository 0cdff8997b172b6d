package schema

import "time"

// ToolboxRow represents the toolbox_rows table - per-user labelled note rows
type ToolboxRow struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID references the owning user
	UserID int64 `gorm:"column:user_id;not null;index"`
	// Label is the short row title
	Label string `gorm:"column:label;not null;type:text"`
	// Content is the row body
	Content string `gorm:"column:content;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ToolboxRow model
func (ToolboxRow) TableName() string {
	return "toolbox_rows"
}
