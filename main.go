package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/espacios-app/reservas-api/cmd/app"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	app.Start()
}
