package repositories

import (
	"errors"

	"careconnect_backend/internal/models"

	"gorm.io/gorm"
)

var ErrConnectionNotFound = errors.New("connection request not found")

// DuplicateActivePair - пара, у которой оказалось больше одного активного
// запроса одновременно. Сервер это не запрещает (см. ConnectionWorker).
type DuplicateActivePair struct {
	CandidateID string `json:"candidate_id"`
	EmployerID  string `json:"employer_id"`
	Count       int64  `json:"count"`
}

type ConnectionRepository interface {
	Create(request *models.ConnectionRequest) error
	FindByID(id string) (*models.ConnectionRequest, error)

	// FindLatestByPair - самая свежая запись для пары или ErrConnectionNotFound.
	FindLatestByPair(candidateID, employerID string) (*models.ConnectionRequest, error)

	// Списки для вьюверов, created_at DESC.
	FindForEmployer(employerID string) ([]models.ConnectionRequest, error)
	FindForCandidate(candidateID string) ([]models.ConnectionRequest, error)

	// UpdateStatus переводит запись из pending в терминальный статус.
	// Переход атомарный: WHERE status = 'pending' защищает от гонки
	// двух конкурентных ответов. Возвращает false если запись уже не pending.
	UpdateStatus(id string, status models.ConnectionStatus) (bool, error)

	// FindPairsWithMultipleActive - пары с более чем одним активным запросом.
	FindPairsWithMultipleActive() ([]DuplicateActivePair, error)
}

type ConnectionRepositoryImpl struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &ConnectionRepositoryImpl{db: db}
}

func (r *ConnectionRepositoryImpl) Create(request *models.ConnectionRequest) error {
	return r.db.Create(request).Error
}

func (r *ConnectionRepositoryImpl) FindByID(id string) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.
		Preload("Candidate.CandidateProfile").
		Preload("Employer.EmployerProfile").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ConnectionRepositoryImpl) FindLatestByPair(candidateID, employerID string) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.
		Where("candidate_id = ? AND employer_id = ?", candidateID, employerID).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ConnectionRepositoryImpl) FindForEmployer(employerID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.
		Preload("Candidate.CandidateProfile").
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *ConnectionRepositoryImpl) FindForCandidate(candidateID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.
		Preload("Employer.EmployerProfile").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *ConnectionRepositoryImpl) UpdateStatus(id string, status models.ConnectionStatus) (bool, error) {
	result := r.db.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ConnectionRepositoryImpl) FindPairsWithMultipleActive() ([]DuplicateActivePair, error) {
	var pairs []DuplicateActivePair
	err := r.db.Model(&models.ConnectionRequest{}).
		Select("candidate_id, employer_id, COUNT(*) as count").
		Where("status IN ?", []models.ConnectionStatus{
			models.ConnectionStatusPending,
			models.ConnectionStatusAccepted,
		}).
		Group("candidate_id, employer_id").
		Having("COUNT(*) > 1").
		Scan(&pairs).Error
	return pairs, err
}
