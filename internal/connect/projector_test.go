package connect

import (
	"testing"
	"time"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"You are now connected with City Hospital",
		MessageFor("accepted", "City Hospital"),
	)
	assert.Equal(t,
		"The connection request with Aigerim Seitova was declined",
		MessageFor("rejected", "Aigerim Seitova"),
	)
	assert.Equal(t,
		"Connection request pending with City Hospital",
		MessageFor("pending", "City Hospital"),
	)

	// Статус приходит из сети: неизвестное значение не должно ломать проекцию
	assert.Equal(t,
		"Connection request withdrawn with City Hospital",
		MessageFor("withdrawn", "City Hospital"),
	)
}

func TestProjectNotifications_CounterpartyByRole(t *testing.T) {
	t.Parallel()

	record := &dto.ConnectionResponse{
		ID:            "conn-1",
		CandidateID:   "cand-1",
		EmployerID:    "emp-1",
		Status:        "pending",
		CandidateName: "Aigerim Seitova",
		EmployerName:  "City Hospital",
		CreatedAt:     time.Now(),
	}

	employerView := ProjectNotifications([]*dto.ConnectionResponse{record}, NewViewerContext("emp-1", models.UserRoleEmployer))
	assert.Len(t, employerView, 1)
	assert.Equal(t, "Aigerim Seitova", employerView[0].CounterpartyName, "Работодатель видит имя кандидата")

	candidateView := ProjectNotifications([]*dto.ConnectionResponse{record}, NewViewerContext("cand-1", models.UserRoleCandidate))
	assert.Len(t, candidateView, 1)
	assert.Equal(t, "City Hospital", candidateView[0].CounterpartyName, "Кандидат видит название организации")
}

func TestProjectNotifications_SortedNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []*dto.ConnectionResponse{
		{ID: "old", Status: "accepted", CreatedAt: base},
		{ID: "newest", Status: "pending", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "middle", Status: "rejected", CreatedAt: base.Add(time.Hour)},
	}

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)
	notifications := ProjectNotifications(records, viewer)

	ids := []string{notifications[0].ID, notifications[1].ID, notifications[2].ID}
	assert.Equal(t, []string{"newest", "middle", "old"}, ids)
}

func TestProjectNotifications_StableOrderOnEqualTimestamps(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []*dto.ConnectionResponse{
		{ID: "b", Status: "pending", CreatedAt: ts},
		{ID: "a", Status: "pending", CreatedAt: ts},
	}

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)

	// Последовательность id должна быть детерминированной для диффа
	first := ProjectNotifications(records, viewer)
	second := ProjectNotifications([]*dto.ConnectionResponse{records[1], records[0]}, viewer)

	assert.Equal(t, joinIDs(first), joinIDs(second))
}
