package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single spend record owned by a user.
type Expense struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Title     string          `json:"title" gorm:"size:200;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Category  string          `json:"category" gorm:"size:120;not null;index"`
	Date      time.Time       `json:"date" gorm:"type:date;not null;index"`
	Note      string          `json:"note,omitempty" gorm:"type:text"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// CategoryTotal is an aggregate row: summed amount per category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthTotal is an aggregate row: summed amount per YYYY-MM month.
type MonthTotal struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}
