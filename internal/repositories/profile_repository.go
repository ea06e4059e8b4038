package repositories

import (
	"errors"

	"careconnect_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateCandidateProfile(profile *models.CandidateProfile) error
	CreateEmployerProfile(profile *models.EmployerProfile) error

	// DisplayName возвращает отображаемое имя стороны для уведомлений:
	// ФИО кандидата либо название организации.
	DisplayName(userID string) (string, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) CreateCandidateProfile(profile *models.CandidateProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateEmployerProfile(profile *models.EmployerProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) DisplayName(userID string) (string, error) {
	var candidate models.CandidateProfile
	if err := r.db.Select("full_name").First(&candidate, "user_id = ?", userID).Error; err == nil {
		return candidate.FullName, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var employer models.EmployerProfile
	if err := r.db.Select("organization_name").First(&employer, "user_id = ?", userID).Error; err == nil {
		return employer.OrganizationName, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return "", ErrProfileNotFound
}
