package main

import (
	"jogofacil/core/logger"
	"jogofacil/core/server"
)

// @title Jogo Facil API
// @version 1.0
// @description Booking marketplace connecting sports-field owners with team captains.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
