package model

import (
	"time"

	"gorm.io/gorm"
)

// AssignmentStatus two-state toggle
type AssignmentStatus string

const (
	AssignmentGenerated AssignmentStatus = "generated"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Valid reports whether s is a known status.
func (s AssignmentStatus) Valid() bool {
	return s == AssignmentGenerated || s == AssignmentCompleted
}

// DateLayout is the wire and storage format of service dates.
const DateLayout = time.DateOnly

// ParseServiceDate parses a YYYY-MM-DD calendar date.
func ParseServiceDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Assignment one (brother, territory) pairing of an outing (table assignments)
//
// The two unique indexes keep a brother or a territory from appearing twice
// in the same (group, date) outing.
type Assignment struct {
	AssignmentID string           `gorm:"type:uuid;primaryKey"                                                                                               json:"assignment_id"`
	GroupID      string           `gorm:"type:uuid;not null;index:idx_assignments_group_date,priority:1;uniqueIndex:uq_assignments_brother,priority:1;uniqueIndex:uq_assignments_territory,priority:1" json:"group_id"`
	ServiceDate  string           `gorm:"type:varchar(10);not null;index:idx_assignments_group_date,priority:2;uniqueIndex:uq_assignments_brother,priority:2;uniqueIndex:uq_assignments_territory,priority:2" json:"service_date"`
	BrotherID    string           `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_brother,priority:3"                                                   json:"brother_id"`
	TerritoryID  string           `gorm:"type:uuid;not null;uniqueIndex:uq_assignments_territory,priority:3"                                                 json:"territory_id"`
	Status       AssignmentStatus `gorm:"type:varchar(20);not null;default:'generated'"                                                                      json:"status"`
	Version      int              `gorm:"not null;default:1"                                                                                                 json:"version"`
	BaseModel

	Brother   *Brother   `gorm:"foreignKey:BrotherID;references:BrotherID"       json:"brother,omitempty"`
	Territory *Territory `gorm:"foreignKey:TerritoryID;references:TerritoryID"   json:"territory,omitempty"`
	Group     *Group     `gorm:"foreignKey:GroupID;references:GroupID"           json:"group,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }

func (a *Assignment) BeforeCreate(*gorm.DB) error {
	assignID(&a.AssignmentID)
	if a.Status == "" {
		a.Status = AssignmentGenerated
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
