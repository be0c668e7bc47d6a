package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/klublotto/klublotto-api/cmd/app"
)

// @contact.name   Klublotto
// @contact.email  support@klublotto.dk
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
