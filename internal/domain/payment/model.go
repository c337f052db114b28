package payment

import (
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

type Type string

const (
	TypeCreditCard Type = "credit_card"
	TypeBorrowed   Type = "borrowed"
)

func (t Type) Valid() bool {
	return t == TypeCreditCard || t == TypeBorrowed
}

// Reference points a payment at either a credit card or a borrowed record;
// Type selects which.
type Reference struct {
	Type Type
	ID   string
}

type Payment struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	UserID        string    `gorm:"type:uuid;index;not null"`
	Type          Type      `gorm:"type:text;not null"`
	ReferenceID   string    `gorm:"type:uuid;not null"`
	Amount        float64   `gorm:"type:numeric(12,2);not null"`
	PaymentDate   time.Time `gorm:"type:date;not null"`
	PaymentMethod *string   `gorm:"type:text"`
	Note          *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (p Payment) Reference() Reference {
	return Reference{Type: p.Type, ID: p.ReferenceID}
}

type ListFilter struct {
	Type        Type
	ReferenceID string
	From        *time.Time
	To          *time.Time
	paging.Params
}

type CreateInput struct {
	UserID      string
	Reference   Reference
	Amount      float64
	PaymentDate *time.Time
	Method      *string
	Note        *string
}

type UpdateInput struct {
	UserID      string
	PaymentID   string
	Reference   *Reference
	Amount      *float64
	PaymentDate *time.Time
	Method      *string
	Note        *string
}

type RepayInput struct {
	UserID      string
	BorrowedID  string
	Amount      float64
	PaymentDate *time.Time
	Method      *string
	Note        *string
}
