package handlers

import (
	"net/http"

	"careconnect_backend/internal/middleware"
	"careconnect_backend/internal/models"
	"careconnect_backend/internal/services"
	"careconnect_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	*BaseHandler
	connectionService services.ConnectionService
}

func NewConnectionHandler(base *BaseHandler, connectionService services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		BaseHandler:       base,
		connectionService: connectionService,
	}
}

func (h *ConnectionHandler) RegisterRoutes(r *gin.RouterGroup) {
	connections := r.Group("/connections")
	connections.Use(middleware.AuthMiddleware())
	{
		// Создать запрос может только работодатель
		connections.POST("", middleware.RoleMiddleware(models.UserRoleEmployer), h.CreateConnection)

		// Ответить на запрос может только кандидат
		connections.PUT("/:connectionId/status", middleware.RoleMiddleware(models.UserRoleCandidate), h.RespondToConnection)

		// Списки для вьюверов
		connections.GET("/employer", middleware.RoleMiddleware(models.UserRoleEmployer), h.GetEmployerConnections)
		connections.GET("/candidate", middleware.RoleMiddleware(models.UserRoleCandidate), h.GetCandidateConnections)

		// Статус пары: решает, предлагать ли кнопку Connect
		connections.GET("/status", h.GetConnectionStatus)
	}
}

// --- Write path ---

func (h *ConnectionHandler) CreateConnection(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateConnectionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	connection, err := h.connectionService.CreateConnection(employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, connection)
}

func (h *ConnectionHandler) RespondToConnection(c *gin.Context) {
	candidateID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	connectionID := c.Param("connectionId")

	var req dto.RespondConnectionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	connection, err := h.connectionService.RespondToConnection(candidateID, connectionID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, connection)
}

// --- Read path ---

func (h *ConnectionHandler) GetEmployerConnections(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.connectionService.GetConnectionsForEmployer(employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConnectionHandler) GetCandidateConnections(c *gin.Context) {
	candidateID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.connectionService.GetConnectionsForCandidate(candidateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ConnectionHandler) GetConnectionStatus(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var query dto.ConnectionStatusQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.connectionService.GetConnectionStatus(query.CandidateID, query.EmployerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
