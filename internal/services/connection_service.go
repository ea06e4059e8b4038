package services

import (
	"careconnect_backend/internal/models"
	"careconnect_backend/internal/repositories"
	"careconnect_backend/internal/services/dto"
	"careconnect_backend/pkg/apperrors"
)

type ConnectionService interface {
	// CreateConnection создает запрос работодателя к кандидату.
	// Конфликт, если для пары уже есть активный (pending/accepted) запрос;
	// после rejected повторный запрос разрешен.
	CreateConnection(employerID string, req *dto.CreateConnectionRequest) (*dto.ConnectionResponse, error)

	// RespondToConnection - ответ кандидата. Разрешен только из pending.
	// Повтор того же решения - no-op успех (идемпотентность);
	// другое решение после фиксации - конфликт.
	RespondToConnection(candidateID, connectionID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error)

	GetConnectionsForEmployer(employerID string) (*dto.ConnectionListResponse, error)
	GetConnectionsForCandidate(candidateID string) (*dto.ConnectionListResponse, error)

	// GetConnectionStatus - последняя запись для пары, nil если пара
	// никогда не взаимодействовала.
	GetConnectionStatus(candidateID, employerID string) (*dto.ConnectionStatusResponse, error)
}

type connectionService struct {
	connectionRepo repositories.ConnectionRepository
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
}

func NewConnectionService(
	connectionRepo repositories.ConnectionRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) ConnectionService {
	return &connectionService{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
	}
}

// ---------------- Write path ----------------

func (s *connectionService) CreateConnection(employerID string, req *dto.CreateConnectionRequest) (*dto.ConnectionResponse, error) {
	employer, err := s.userRepo.FindByID(employerID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Employer account not found")
	}
	if employer.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInvalidUserRole
	}

	candidate, err := s.userRepo.FindByID(req.CandidateID)
	if err != nil || candidate.Role != models.UserRoleCandidate {
		return nil, apperrors.NewNotFoundError("connections", "Candidate not found")
	}

	// Последняя запись пары решает, можно ли отправлять новый запрос.
	latest, err := s.connectionRepo.FindLatestByPair(req.CandidateID, employerID)
	if err != nil && !apperrors.Is(err, repositories.ErrConnectionNotFound) {
		return nil, apperrors.ErrDatabase(err)
	}
	if latest != nil && latest.Status.IsActive() {
		return nil, apperrors.ErrActiveConnectionExists
	}

	connection := &models.ConnectionRequest{
		CandidateID: req.CandidateID,
		EmployerID:  employerID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connectionRepo.Create(connection); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	// Перечитываем с preload-ами, чтобы отдать имена сторон
	created, err := s.connectionRepo.FindByID(connection.ID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}

	return s.buildConnectionResponse(created), nil
}

func (s *connectionService) RespondToConnection(candidateID, connectionID string, req *dto.RespondConnectionRequest) (*dto.ConnectionResponse, error) {
	decision := models.ConnectionStatus(req.Decision)
	if !decision.IsTerminal() {
		return nil, apperrors.ErrInvalidDecision
	}

	connection, err := s.connectionRepo.FindByID(connectionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConnectionNotFound) {
			return nil, apperrors.ErrConnectionNotFound
		}
		return nil, apperrors.ErrDatabase(err)
	}

	// Отвечать может только адресат запроса
	if connection.CandidateID != candidateID {
		return nil, apperrors.ErrNotRequestRecipient
	}

	if connection.Status.IsTerminal() {
		// Повтор того же решения сходится к тому же состоянию без ошибки
		if connection.Status == decision {
			return s.buildConnectionResponse(connection), nil
		}
		return nil, apperrors.ErrConnectionNotPending
	}

	updated, err := s.connectionRepo.UpdateStatus(connectionID, decision)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	if !updated {
		// Гонка: конкурентный ответ успел первым. Отдаем авторитетное
		// состояние, клиент должен перечитать, а не верить оптимистичному.
		authoritative, err := s.connectionRepo.FindByID(connectionID)
		if err != nil {
			return nil, apperrors.ErrDatabase(err)
		}
		if authoritative.Status == decision {
			return s.buildConnectionResponse(authoritative), nil
		}
		return nil, apperrors.ErrConnectionNotPending
	}

	connection.Status = decision
	return s.buildConnectionResponse(connection), nil
}

// ---------------- Read path ----------------

func (s *connectionService) GetConnectionsForEmployer(employerID string) (*dto.ConnectionListResponse, error) {
	connections, err := s.connectionRepo.FindForEmployer(employerID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return s.buildConnectionListResponse(connections), nil
}

func (s *connectionService) GetConnectionsForCandidate(candidateID string) (*dto.ConnectionListResponse, error) {
	connections, err := s.connectionRepo.FindForCandidate(candidateID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return s.buildConnectionListResponse(connections), nil
}

func (s *connectionService) GetConnectionStatus(candidateID, employerID string) (*dto.ConnectionStatusResponse, error) {
	latest, err := s.connectionRepo.FindLatestByPair(candidateID, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConnectionNotFound) {
			return &dto.ConnectionStatusResponse{Connection: nil}, nil
		}
		return nil, apperrors.ErrDatabase(err)
	}
	return &dto.ConnectionStatusResponse{Connection: s.buildConnectionResponse(latest)}, nil
}

// ---------------- Helpers ----------------

func (s *connectionService) buildConnectionResponse(connection *models.ConnectionRequest) *dto.ConnectionResponse {
	resp := &dto.ConnectionResponse{
		ID:          connection.ID,
		CandidateID: connection.CandidateID,
		EmployerID:  connection.EmployerID,
		Status:      string(connection.Status),
		CreatedAt:   connection.CreatedAt,
		UpdatedAt:   connection.UpdatedAt,
	}

	if connection.Candidate != nil && connection.Candidate.CandidateProfile != nil {
		resp.CandidateName = connection.Candidate.CandidateProfile.FullName
	}
	if connection.Employer != nil && connection.Employer.EmployerProfile != nil {
		resp.EmployerName = connection.Employer.EmployerProfile.OrganizationName
	}

	// Preload-ы не загружены (напр. запись только что обновлена) -
	// имена добираем напрямую из профилей
	if resp.CandidateName == "" {
		if name, err := s.profileRepo.DisplayName(connection.CandidateID); err == nil {
			resp.CandidateName = name
		}
	}
	if resp.EmployerName == "" {
		if name, err := s.profileRepo.DisplayName(connection.EmployerID); err == nil {
			resp.EmployerName = name
		}
	}

	return resp
}

func (s *connectionService) buildConnectionListResponse(connections []models.ConnectionRequest) *dto.ConnectionListResponse {
	list := make([]*dto.ConnectionResponse, 0, len(connections))
	for i := range connections {
		list = append(list, s.buildConnectionResponse(&connections[i]))
	}
	return &dto.ConnectionListResponse{
		Connections: list,
		Total:       int64(len(list)),
	}
}
