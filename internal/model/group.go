package model

import "gorm.io/gorm"

// GroupStatus group lifecycle status
type GroupStatus string

const (
	GroupActive   GroupStatus = "active"
	GroupInactive GroupStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s GroupStatus) Valid() bool {
	return s == GroupActive || s == GroupInactive
}

// Group field-service group (table groups)
type Group struct {
	GroupID     string      `gorm:"type:uuid;primaryKey"                        json:"group_id"`
	Name        string      `gorm:"type:varchar(100);not null"                  json:"name"`
	Description string      `gorm:"type:text"                                   json:"description,omitempty"`
	Status      GroupStatus `gorm:"type:varchar(20);not null;default:'active'"  json:"status"`
	SoftDeleteModel
}

func (Group) TableName() string { return "groups" }

func (g *Group) BeforeCreate(*gorm.DB) error {
	assignID(&g.GroupID)
	return nil
}
