package models

// ConnectionStatus - статус запроса на связь.
// Жизненный цикл: pending -> accepted | rejected.
// Создает запрос работодатель, отвечает только кандидат.
// Записи никогда физически не удаляются.
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// IsTerminal сообщает, что запрос уже разрешен и менять его нельзя.
func (s ConnectionStatus) IsTerminal() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusRejected
}

// IsActive - pending и accepted блокируют создание нового запроса для пары;
// после rejected работодатель может отправить запрос повторно.
func (s ConnectionStatus) IsActive() bool {
	return s == ConnectionStatusPending || s == ConnectionStatusAccepted
}

// ConnectionRequest - единственная durable-сущность подсистемы:
// одна запись на одну попытку связи работодателя с кандидатом.
type ConnectionRequest struct {
	BaseModel
	CandidateID string           `gorm:"type:uuid;not null;index:idx_connection_pair"`
	EmployerID  string           `gorm:"type:uuid;not null;index:idx_connection_pair"`
	Status      ConnectionStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Relations
	Candidate *User `gorm:"foreignKey:CandidateID"`
	Employer  *User `gorm:"foreignKey:EmployerID"`
}
