package dto

import "time"

// ---------------- Requests ----------------

type CreateConnectionRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid4"`
}

type RespondConnectionRequest struct {
	// pending решением не является, только терминальные статусы
	Decision string `json:"decision" validate:"required,is-connection-decision"`
}

type ConnectionStatusQuery struct {
	CandidateID string `form:"candidate_id" validate:"required,uuid4"`
	EmployerID  string `form:"employer_id" validate:"required,uuid4"`
}

// ---------------- Responses ----------------

type ConnectionResponse struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidate_id"`
	EmployerID    string    `json:"employer_id"`
	Status        string    `json:"status"`
	CandidateName string    `json:"candidate_name,omitempty"`
	EmployerName  string    `json:"employer_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ConnectionListResponse struct {
	Connections []*ConnectionResponse `json:"connections"`
	Total       int64                 `json:"total"`
}

// ConnectionStatusResponse - ответ на get-status. Connection равен null,
// когда пара еще никогда не взаимодействовала (кнопка Connect активна).
type ConnectionStatusResponse struct {
	Connection *ConnectionResponse `json:"connection"`
}
