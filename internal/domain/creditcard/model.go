package creditcard

import (
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

type CreditCard struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	BankName    string    `gorm:"not null"`
	CardNumber  string    `gorm:"type:char(4);not null"`
	CardType    *string   `gorm:"type:text"`
	LimitAmount *float64  `gorm:"type:numeric(12,2)"`
	DueDate     int       `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	IsActive *bool
	paging.Params
}

type CreateInput struct {
	UserID      string
	BankName    string
	CardNumber  string
	CardType    *string
	LimitAmount *float64
	DueDate     int
	IsActive    *bool
}

// UpdateInput replaces only the fields that are set.
type UpdateInput struct {
	UserID      string
	CardID      string
	BankName    *string
	CardNumber  *string
	CardType    *string
	LimitAmount OptionalFloat
	DueDate     *int
	IsActive    *bool
}

type OptionalFloat struct {
	Set   bool
	Value *float64
}
