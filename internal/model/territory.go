package model

import "gorm.io/gorm"

// Territory assignable area with an optional map reference (table territories)
type Territory struct {
	TerritoryID string `gorm:"type:uuid;primaryKey"       json:"territory_id"`
	Name        string `gorm:"type:varchar(150);not null" json:"name"`
	Description string `gorm:"type:text"                  json:"description,omitempty"`
	MapImageURL string `gorm:"type:varchar(500)"          json:"map_image_url,omitempty"`
	MapURL      string `gorm:"type:varchar(500)"          json:"map_url,omitempty"`
	GroupID     string `gorm:"type:uuid;not null;index"   json:"group_id"`
	IsActive    bool   `gorm:"not null"                   json:"is_active"`
	SoftDeleteModel

	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

func (Territory) TableName() string { return "territories" }

func (t *Territory) BeforeCreate(*gorm.DB) error {
	assignID(&t.TerritoryID)
	return nil
}
