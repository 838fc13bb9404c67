package model

import "gorm.io/gorm"

// Brother volunteer eligible for field-service assignments (table brothers)
type Brother struct {
	BrotherID string `gorm:"type:uuid;primaryKey"                      json:"brother_id"`
	FullName  string `gorm:"type:varchar(150);not null"                json:"full_name"`
	Phone     string `gorm:"type:varchar(30)"                          json:"phone,omitempty"`
	Email     string `gorm:"type:varchar(255)"                         json:"email,omitempty"`
	GroupID   string `gorm:"type:uuid;not null;index"                  json:"group_id"`
	IsActive  bool   `gorm:"not null"                                  json:"is_active"`
	SoftDeleteModel

	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

func (Brother) TableName() string { return "brothers" }

func (b *Brother) BeforeCreate(*gorm.DB) error {
	assignID(&b.BrotherID)
	return nil
}
