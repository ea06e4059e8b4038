package models

type UserRole string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	IsVerified   bool     `gorm:"default:false"`

	// Relations
	CandidateProfile *CandidateProfile `gorm:"foreignKey:UserID"`
	EmployerProfile  *EmployerProfile  `gorm:"foreignKey:UserID"`
}
