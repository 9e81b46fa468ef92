package models

import "gorm.io/gorm"

// User is the portal identity a participant signs in with. Account
// provisioning and password flows live in the surrounding identity
// infrastructure; this table only anchors ownership checks.
type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Role      string `json:"role" gorm:"default:'PARTICIPANT'"` // PARTICIPANT, ADMIN
	IsDeleted bool   `gorm:"default:false"`
}
