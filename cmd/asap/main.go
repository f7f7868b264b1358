package main

import "github.com/asaplab/asap/cmd/asap/commands"

// @title ASAP API
// @version 1.0
// @description Lab research enrollment portal for students and professors

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	commands.Execute()
}
