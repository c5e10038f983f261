package main

import (
	"fmt"
	"log"

	"github.com/flaveur/RealTimeChatApp/internal/config"
	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/router"

	// Swagger imports
	_ "github.com/flaveur/RealTimeChatApp/docs" // This is important for swag to find the generated docs
)

func init() {
	config.LoadConfig()
}

// @title           Chat API
// @version         1.0
// @description     This is the API for the chat service: auth, friends, direct messages, notes and settings.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	r := router.New()

	fmt.Printf("Server is running on %s\n", config.AppConfig.ListenAddr)
	fmt.Println("Swagger UI is available at /swagger/index.html")
	log.Fatal(r.Run(config.AppConfig.ListenAddr))
}
