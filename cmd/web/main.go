// @title           careconnect API
// @version         1.0
// @description     API подсистемы запросов на связь (кандидаты и работодатели).
// @host            localhost:4000
// @BasePath        /

package main

import "careconnect_backend/internal/app"

func main() {
	app.Run()
}
