// Package persistence provides database storage implementations.
package persistence

import "time"

// InvestorModel represents an investor catalog record in the database.
type InvestorModel struct {
	ID                string    `gorm:"column:id;primaryKey;size:36"`
	Name              string    `gorm:"column:investor_name;index;size:512"`
	InvestorType      string    `gorm:"column:investor_type;index;size:255"`
	GlobalHQ          string    `gorm:"column:global_hq;index;size:255"`
	StageOfInvestment string    `gorm:"column:stage_of_investment;index;size:255"`
	Website           string    `gorm:"column:website;size:1024"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (InvestorModel) TableName() string {
	return "investors"
}
