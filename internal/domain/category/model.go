package category

import "time"

const (
	DefaultColor = "#6B7280"
	DefaultIcon  = "tag"
)

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Color     string    `gorm:"not null"`
	Icon      string    `gorm:"not null"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type CreateInput struct {
	UserID string
	Name   string
	Color  *string
	Icon   *string
}

type UpdateInput struct {
	UserID     string
	CategoryID string
	Name       *string
	Color      *string
	Icon       *string
}

type defaultCategory struct {
	Name  string
	Color string
	Icon  string
}

var defaultCategories = []defaultCategory{
	{Name: "Food & Dining", Color: "#EF4444", Icon: "utensils"},
	{Name: "Transportation", Color: "#F59E0B", Icon: "car"},
	{Name: "Shopping", Color: "#EC4899", Icon: "shopping-bag"},
	{Name: "Entertainment", Color: "#8B5CF6", Icon: "film"},
	{Name: "Bills & Utilities", Color: "#3B82F6", Icon: "file-text"},
	{Name: "Healthcare", Color: "#10B981", Icon: "heart"},
	{Name: "Education", Color: "#6366F1", Icon: "book"},
	{Name: "Travel", Color: "#14B8A6", Icon: "plane"},
	{Name: "Groceries", Color: "#84CC16", Icon: "shopping-cart"},
	{Name: "Other", Color: DefaultColor, Icon: DefaultIcon},
}
