package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок домена "connections" (жизненный цикл запросов на связь).
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrDatabase - фабрика для ошибок БД (500)
func ErrDatabase(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Database operation failed", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок домена connections)
// =========================================================================

// ErrConnectionNotFound - запрос на связь не найден.
var ErrConnectionNotFound = New(
	CodeNotFound,
	"connections",
	"Connection request not found",
	http.StatusNotFound, // 404
)

// ErrActiveConnectionExists - для пары кандидат/работодатель уже есть
// активный (pending или accepted) запрос. Повторная отправка запрещена.
var ErrActiveConnectionExists = New(
	CodeConflict,
	"connections",
	"An active connection request already exists for this pair",
	http.StatusConflict, // 409
)

// ErrConnectionNotPending - запись уже перешла в терминальный статус,
// ответить на нее нельзя (конкурентный ответ уже зафиксирован).
var ErrConnectionNotPending = New(
	CodeConflict,
	"connections",
	"Connection request is no longer pending",
	http.StatusConflict, // 409
)

// ErrNotRequestRecipient - отвечать на запрос может только кандидат,
// которому он адресован.
var ErrNotRequestRecipient = New(
	CodeForbidden,
	"connections",
	"Only the candidate this request is addressed to may respond",
	http.StatusForbidden, // 403
)

// ErrInvalidDecision - решение должно быть accepted или rejected.
var ErrInvalidDecision = New(
	CodeInvalidStatus,
	"connections",
	"Decision must be either 'accepted' or 'rejected'",
	http.StatusBadRequest, // 400
)

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя
// (напр. кандидат пытается создать запрос на связь).
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest, // 400 - это логическая ошибка, а не ошибка прав
)
