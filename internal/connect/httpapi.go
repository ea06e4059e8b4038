package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services/dto"
	"careconnect_backend/pkg/apperrors"
)

// HTTPConnectionAPI - транспортная реализация ConnectionAPI поверх
// REST API сервера. Коды ответа транслируются в sentinel-ошибки
// клиентского слоя.
type HTTPConnectionAPI struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPConnectionAPI(baseURL, token string) *HTTPConnectionAPI {
	return &HTTPConnectionAPI{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *HTTPConnectionAPI) CreateConnection(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error) {
	body := map[string]string{"candidate_id": candidateID}

	var record dto.ConnectionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/connections", body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPConnectionAPI) ListConnectionsForEmployer(ctx context.Context, employerID string) ([]*dto.ConnectionResponse, error) {
	var list dto.ConnectionListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/connections/employer", nil, &list); err != nil {
		return nil, err
	}
	return list.Connections, nil
}

func (c *HTTPConnectionAPI) ListConnectionsForCandidate(ctx context.Context, candidateID string) ([]*dto.ConnectionResponse, error) {
	var list dto.ConnectionListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/connections/candidate", nil, &list); err != nil {
		return nil, err
	}
	return list.Connections, nil
}

func (c *HTTPConnectionAPI) UpdateConnectionStatus(ctx context.Context, connectionID string, status models.ConnectionStatus) (*dto.ConnectionResponse, error) {
	body := map[string]string{"decision": string(status)}
	path := fmt.Sprintf("/api/v1/connections/%s/status", connectionID)

	var record dto.ConnectionResponse
	if err := c.do(ctx, http.MethodPut, path, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPConnectionAPI) GetConnectionStatus(ctx context.Context, candidateID, employerID string) (*dto.ConnectionResponse, error) {
	params := url.Values{}
	params.Set("candidate_id", candidateID)
	params.Set("employer_id", employerID)

	var status dto.ConnectionStatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/connections/status?"+params.Encode(), nil, &status); err != nil {
		return nil, err
	}
	return status.Connection, nil
}

// do выполняет запрос и декодирует ответ либо транслирует ошибку.
func (c *HTTPConnectionAPI) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		// Таймауты и обрывы соединения: транзиентная ошибка,
		// ретраит только следующий тик поллера
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if res.StatusCode >= 400 {
		return translateStatus(res.StatusCode, resBody)
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// translateStatus отображает HTTP-коды сервера в таксономию клиента.
func translateStatus(statusCode int, body []byte) error {
	message := serverMessage(body)

	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusBadRequest, http.StatusForbidden, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	default:
		return fmt.Errorf("%w: server returned %d: %s", ErrNetwork, statusCode, message)
	}
}

func serverMessage(body []byte) string {
	var errResponse apperrors.ErrorResponse
	if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error != nil {
		return errResponse.Error.Message
	}
	return string(body)
}
