package connect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
	"careconnect_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusConflict, ErrConflict},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusForbidden, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrNetwork},
		{http.StatusBadGateway, ErrNetwork},
	}

	for _, tc := range cases {
		err := translateStatus(tc.code, nil)
		assert.ErrorIs(t, err, tc.want, "код %d", tc.code)
	}
}

func TestTranslateStatus_ExtractsServerMessage(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(apperrors.ErrorResponse{
		Error: &apperrors.AppError{
			Code:    apperrors.CodeAlreadyExists,
			Domain:  "connection",
			Message: "active connection request already exists",
		},
	})
	require.NoError(t, err)

	translated := translateStatus(http.StatusConflict, body)
	assert.ErrorIs(t, translated, ErrConflict)
	assert.Contains(t, translated.Error(), "active connection request already exists")

	// Невалидный JSON не ломает трансляцию - тело идет как есть
	raw := translateStatus(http.StatusBadRequest, []byte("plain text error"))
	assert.Contains(t, raw.Error(), "plain text error")
}

func TestHTTPConnectionAPI_CreateConnection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/connections", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cand-1", body["candidate_id"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.ConnectionResponse{
			ID:          "conn-1",
			CandidateID: "cand-1",
			EmployerID:  "emp-1",
			Status:      "pending",
			CreatedAt:   time.Now(),
		})
	}))
	defer server.Close()

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	record, err := api.CreateConnection(context.Background(), "cand-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "conn-1", record.ID)
	assert.Equal(t, "pending", record.Status)
}

func TestHTTPConnectionAPI_UpdateConnectionStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/connections/conn-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "accepted", body["decision"])

		json.NewEncoder(w).Encode(dto.ConnectionResponse{
			ID:     "conn-1",
			Status: "accepted",
		})
	}))
	defer server.Close()

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	record, err := api.UpdateConnectionStatus(context.Background(), "conn-1", models.ConnectionStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, "accepted", record.Status)
}

func TestHTTPConnectionAPI_ConflictResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(apperrors.ErrorResponse{
			Error: &apperrors.AppError{
				Code:    apperrors.CodeAlreadyExists,
				Domain:  "connection",
				Message: "active connection request already exists",
			},
		})
	}))
	defer server.Close()

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	_, err := api.CreateConnection(context.Background(), "cand-1", "emp-1")
	require.ErrorIs(t, err, ErrConflict)
}

func TestHTTPConnectionAPI_StatusNullWhenNeverInteracted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/connections/status", r.URL.Path)
		assert.Equal(t, "cand-1", r.URL.Query().Get("candidate_id"))
		assert.Equal(t, "emp-1", r.URL.Query().Get("employer_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"connection": null}`))
	}))
	defer server.Close()

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	record, err := api.GetConnectionStatus(context.Background(), "cand-1", "emp-1")
	require.NoError(t, err)
	assert.Nil(t, record, "Пара без взаимодействий - nil без ошибки")
}

func TestHTTPConnectionAPI_ListForEmployer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/connections/employer", r.URL.Path)
		json.NewEncoder(w).Encode(dto.ConnectionListResponse{
			Connections: []*dto.ConnectionResponse{
				{ID: "conn-2", Status: "rejected"},
				{ID: "conn-1", Status: "accepted"},
			},
			Total: 2,
		})
	}))
	defer server.Close()

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	list, err := api.ListConnectionsForEmployer(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "conn-2", list[0].ID)
}

func TestHTTPConnectionAPI_TransportErrorIsNetwork(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // адрес есть, слушателя нет

	api := NewHTTPConnectionAPI(server.URL, "test-token")

	_, err := api.ListConnectionsForCandidate(context.Background(), "cand-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork), "Обрыв соединения - транзиентная ErrNetwork")
}
