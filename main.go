// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"shopcart-api/controllers"
	"shopcart-api/middleware"
	"shopcart-api/routes"
	"shopcart-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := utils.LoadConfig()
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	userController := controllers.NewUserController(client, tokens, cfg.BcryptCost)
	categoryController := controllers.NewCategoryController(client)
	productController := controllers.NewProductController(client)
	cartController := controllers.NewCartController(client)
	orderController := controllers.NewOrderController(client, emailService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, middleware.NewAuthMiddleware(tokens),
		userController, categoryController, productController, cartController, orderController)

	// Start the server
	fmt.Printf("Server is running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
