package db

import (
	"time"

	"gorm.io/gorm"
)

// Organization is a tenant. Every business row carries its PublicID in
// an org_id column, which is what row-level filtering keys on.
type Organization struct {
	gorm.Model
	PublicID string `json:"public_id" gorm:"uniqueIndex;size:36"`
	Name     string `json:"name"`
}

// Profile is a user known to the auth provider.
type Profile struct {
	gorm.Model
	Subject     string `json:"subject" gorm:"uniqueIndex"` // auth provider subject id
	Email       string `json:"email" gorm:"index"`
	DisplayName string `json:"display_name"`
}

// Membership links a profile to an organization with a role.
type Membership struct {
	gorm.Model
	OrgID     string `json:"org_id" gorm:"index;size:36"`
	ProfileID uint   `json:"profile_id" gorm:"index"`
	Role      string `json:"role"` // owner, member
}

// Client is a customer or lead of an organization. Leads are clients
// with Status "lead".
type Client struct {
	gorm.Model
	OrgID   string `json:"org_id" gorm:"index;size:36"`
	Name    string `json:"name" gorm:"index"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Status  string `json:"status" gorm:"index"` // lead, active, archived
	Notes   string `json:"notes"`
}

// Task is a unit of work on the board. A task with a non-empty
// RecurRule and a non-nil DueDate is a seed for recurrence
// materialization.
type Task struct {
	gorm.Model
	OrgID       string     `json:"org_id" gorm:"index;size:36"`
	ClientID    *uint      `json:"client_id"`
	Title       string     `json:"title" gorm:"index"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"index"` // todo, doing, done
	Priority    string     `json:"priority"`            // low, medium, high, urgent
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date" gorm:"index"`

	RecurRule     string     `json:"recur_rule" gorm:"column:recur_rule;index"` // "", weekly, monthly
	RecurInterval int        `json:"recur_interval" gorm:"column:recur_interval"`
	RecurCount    int        `json:"recur_count" gorm:"column:recur_count"`
	RecurUntil    *time.Time `json:"recur_until" gorm:"column:recur_until"`
}

// Invoice is a billing document with line items. Total is recomputed
// from the items on every write.
type Invoice struct {
	gorm.Model
	OrgID     string        `json:"org_id" gorm:"index;size:36"`
	ClientID  uint          `json:"client_id" gorm:"index"`
	Number    string        `json:"number" gorm:"index"`
	Status    string        `json:"status" gorm:"index"` // draft, sent, paid, overdue
	IssueDate *time.Time    `json:"issue_date"`
	DueDate   *time.Time    `json:"due_date" gorm:"index"`
	Currency  string        `json:"currency"`
	Total     float64       `json:"total"`
	Notes     string        `json:"notes"`
	Items     []InvoiceItem `json:"items"`
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	gorm.Model
	InvoiceID   uint    `json:"invoice_id" gorm:"index"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// AllModels lists every model for migration, in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Organization{},
		&Profile{},
		&Membership{},
		&Client{},
		&Task{},
		&Invoice{},
		&InvoiceItem{},
	}
}
