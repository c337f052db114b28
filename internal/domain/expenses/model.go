package expenses

import (
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "cash"
	PaymentModeCreditCard PaymentMode = "credit_card"
	PaymentModeBorrowed   PaymentMode = "borrowed"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentModeCash || m == PaymentModeCreditCard || m == PaymentModeBorrowed
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Expense carries at most one funding reference, the one matching
// PaymentMode.
type Expense struct {
	ID                 string      `gorm:"type:uuid;primaryKey"`
	UserID             string      `gorm:"type:uuid;index;not null"`
	Amount             float64     `gorm:"type:numeric(12,2);not null"`
	CategoryID         string      `gorm:"type:uuid;not null"`
	PaymentMode        PaymentMode `gorm:"type:text;not null"`
	CreditCardID       *string     `gorm:"type:uuid"`
	BorrowedID         *string     `gorm:"type:uuid"`
	Date               time.Time   `gorm:"type:date;not null"`
	Note               *string     `gorm:"type:text"`
	IsRecurring        bool        `gorm:"not null;default:false"`
	RecurringFrequency *Frequency  `gorm:"type:text"`
	CreatedAt          time.Time   `gorm:"autoCreateTime"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	From         *time.Time
	To           *time.Time
	CategoryID   string
	PaymentMode  PaymentMode
	CreditCardID string
	BorrowedID   string
	MinAmount    *float64
	MaxAmount    *float64
	paging.Params
}

type CreateExpenseInput struct {
	UserID             string
	Amount             float64
	CategoryID         string
	PaymentMode        PaymentMode
	CreditCardID       *string
	BorrowedID         *string
	Date               *time.Time
	Note               *string
	IsRecurring        bool
	RecurringFrequency *Frequency
}

// UpdateExpenseInput replaces only the fields that are set.
type UpdateExpenseInput struct {
	UserID             string
	ExpenseID          string
	Amount             *float64
	CategoryID         *string
	PaymentMode        *PaymentMode
	CreditCardID       *string
	BorrowedID         *string
	Date               *time.Time
	Note               *string
	IsRecurring        *bool
	RecurringFrequency *Frequency
}
