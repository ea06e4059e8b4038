package models

import (
	"gorm.io/datatypes"
)

// CandidateProfile - профиль медицинского работника.
type CandidateProfile struct {
	BaseModel
	UserID     string `gorm:"type:uuid;not null;uniqueIndex"`
	FullName   string `gorm:"not null"`
	Profession string `gorm:"type:varchar(100)"` // "nurse", "physician", "paramedic"...
	City       string
	// Специализации и сертификаты, например ["ICU", "BLS", "ACLS"]
	Specialties datatypes.JSON `gorm:"type:jsonb"`
}

// EmployerProfile - профиль нанимающей организации.
type EmployerProfile struct {
	BaseModel
	UserID           string `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationName string `gorm:"not null"`
	City             string
	IsVerified       bool `gorm:"default:false"`
}
