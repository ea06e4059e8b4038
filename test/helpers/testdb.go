package helpers

import (
	"fmt"
	"testing"
	"time"

	"careconnect_backend/internal/auth"
	"careconnect_backend/internal/models"
	"careconnect_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с захешированным паролем.
// ID задается явно, чтобы не зависеть от uuid-расширения в тестовой БД.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err, "Не удалось хешировать пароль")

	user := &models.User{
		BaseModel:    models.BaseModel{ID: uuid.NewString()},
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(user), "Не удалось создать пользователя %s", email)
	return user
}

// CreateCandidate создает кандидата с профилем и возвращает его токен.
func CreateCandidate(t *testing.T, db *gorm.DB, fullName string) (string, *models.User) {
	t.Helper()

	email := fmt.Sprintf("candidate_%d@test.com", time.Now().UnixNano())
	user := CreateUser(t, db, email, "password123", models.UserRoleCandidate)

	profile := &models.CandidateProfile{
		BaseModel:   models.BaseModel{ID: uuid.NewString()},
		UserID:      user.ID,
		FullName:    fullName,
		Profession:  "nurse",
		City:        "Almaty",
		Specialties: datatypes.JSON(`["ICU", "BLS"]`),
	}
	require.NoError(t, repositories.NewProfileRepository(db).CreateCandidateProfile(profile), "Не удалось создать профиль кандидата")

	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err, "Не удалось выдать токен кандидата")
	return token, user
}

// CreateEmployer создает работодателя с профилем и возвращает его токен.
func CreateEmployer(t *testing.T, db *gorm.DB, organizationName string) (string, *models.User) {
	t.Helper()

	email := fmt.Sprintf("employer_%d@test.com", time.Now().UnixNano())
	user := CreateUser(t, db, email, "password123", models.UserRoleEmployer)

	profile := &models.EmployerProfile{
		BaseModel:        models.BaseModel{ID: uuid.NewString()},
		UserID:           user.ID,
		OrganizationName: organizationName,
		City:             "Almaty",
		IsVerified:       true,
	}
	require.NoError(t, repositories.NewProfileRepository(db).CreateEmployerProfile(profile), "Не удалось создать профиль работодателя")

	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err, "Не удалось выдать токен работодателя")
	return token, user
}
