package borrowed

import (
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
)

type Type string

const (
	TypeBorrowed Type = "borrowed"
	TypeLent     Type = "lent"
)

func (t Type) Valid() bool {
	return t == TypeBorrowed || t == TypeLent
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusRepaid  Status = "repaid"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPartial || s == StatusRepaid
}

// Record is money borrowed from or lent to a counterparty. RepaidAmount and
// Status are only ever written through Reconcile.
type Record struct {
	ID           string     `gorm:"type:uuid;primaryKey"`
	UserID       string     `gorm:"type:uuid;index;not null"`
	Name         string     `gorm:"not null"`
	Phone        *string    `gorm:"type:text"`
	Amount       float64    `gorm:"type:numeric(12,2);not null"`
	Type         Type       `gorm:"type:text;not null"`
	RepaidAmount float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Status       Status     `gorm:"type:text;not null;default:pending"`
	DueDate      *time.Time `gorm:"type:date"`
	Note         *string    `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Record) TableName() string {
	return "borrowed_money"
}

func (r Record) RemainingAmount() float64 {
	return Remaining(r.Amount, r.RepaidAmount)
}

type ListFilter struct {
	Type   Type
	Status Status
	paging.Params
}

type CreateInput struct {
	UserID  string
	Name    string
	Phone   *string
	Amount  float64
	Type    Type
	DueDate *time.Time
	Note    *string
}

type UpdateInput struct {
	UserID   string
	RecordID string
	Name     *string
	Phone    *string
	Amount   *float64
	Type     *Type
	DueDate  *time.Time
	Note     *string
}

type OverdueItem struct {
	Record
	RemainingAmount  float64
	DaysSinceCreated int
}
