// Package models defines the persisted entities and the fixed category
// vocabularies for transactions.
package models

import "time"

// TransactionKind discriminates between the two transaction tables.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindOutcome TransactionKind = "outcome"
)

// ParseKind converts a route segment into a TransactionKind.
func ParseKind(s string) (TransactionKind, bool) {
	switch TransactionKind(s) {
	case KindIncome, KindOutcome:
		return TransactionKind(s), true
	}
	return "", false
}

// IncomeType is the fixed category vocabulary for income records.
type IncomeType string

const (
	IncomeSalary     IncomeType = "Salary"
	IncomeInvestment IncomeType = "Investment"
	IncomeBonus      IncomeType = "Bonus"
	IncomeOther      IncomeType = "Other"
)

// IncomeTypes lists the income vocabulary in display order.
func IncomeTypes() []IncomeType {
	return []IncomeType{IncomeSalary, IncomeInvestment, IncomeBonus, IncomeOther}
}

// Valid reports whether t is a member of the income vocabulary.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeSalary, IncomeInvestment, IncomeBonus, IncomeOther:
		return true
	}
	return false
}

// OutcomeType is the fixed category vocabulary for outcome records.
type OutcomeType string

const (
	OutcomeFood          OutcomeType = "Food"
	OutcomeTransport     OutcomeType = "Transport"
	OutcomeHealth        OutcomeType = "Health"
	OutcomeEducation     OutcomeType = "Education"
	OutcomeEntertainment OutcomeType = "Entertainment"
	OutcomeOther         OutcomeType = "Other"
)

// OutcomeTypes lists the outcome vocabulary in display order.
func OutcomeTypes() []OutcomeType {
	return []OutcomeType{OutcomeFood, OutcomeTransport, OutcomeHealth, OutcomeEducation, OutcomeEntertainment, OutcomeOther}
}

// Valid reports whether t is a member of the outcome vocabulary.
func (t OutcomeType) Valid() bool {
	switch t {
	case OutcomeFood, OutcomeTransport, OutcomeHealth, OutcomeEducation, OutcomeEntertainment, OutcomeOther:
		return true
	}
	return false
}

// User represents a registered account. Password always holds a bcrypt
// hash, never the submitted value.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:100;uniqueIndex;not null"`
	Name      string    `gorm:"size:100;not null"`
	Password  string    `gorm:"size:255;not null"`
	Savings   float64   `gorm:"default:0"`
	Debt      float64   `gorm:"default:0"`
	CreatedAt time.Time

	Incomes  []Income  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Outcomes []Outcome `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Income is a credit transaction owned by a single user.
type Income struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      uint       `gorm:"index;not null"`
	Amount      float64    `gorm:"type:decimal(10,2);not null"`
	Type        IncomeType `gorm:"size:50;not null;index"`
	Description string     `gorm:"size:255"`
	Date        time.Time  `gorm:"not null;index"`
}

// Outcome is a debit transaction owned by a single user.
type Outcome struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index;not null"`
	Amount      float64     `gorm:"type:decimal(10,2);not null"`
	Type        OutcomeType `gorm:"size:50;not null;index"`
	Description string      `gorm:"size:255"`
	Date        time.Time   `gorm:"not null;index"`
}

// Session associates a token with an authenticated user.
type Session struct {
	Token        string    `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt    time.Time `gorm:"not null"`
	LastActivity time.Time
}
