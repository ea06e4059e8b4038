package handlers

// AppHandlers содержит все HTTP-обработчики приложения.
type AppHandlers struct {
	ConnectionHandler *ConnectionHandler
}
