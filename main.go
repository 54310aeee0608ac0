package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/hidori-app/hidori-api/cmd/app"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: a server-configured admin token or an event access token from POST /events/{eventID}/token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
