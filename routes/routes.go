// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"shopcart-api/controllers"
	"shopcart-api/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	authMiddleware mux.MiddlewareFunc,
	userController *controllers.UserController,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
) {
	// Public user routes
	router.HandleFunc("/user/signup", userController.Signup).Methods("POST")
	router.HandleFunc("/user/login", userController.Login).Methods("POST")

	// Authenticated user routes
	user := router.PathPrefix("/user").Subrouter()
	user.Use(authMiddleware)
	user.HandleFunc("/details", userController.Details).Methods("GET")
	user.HandleFunc("/logout", userController.Logout).Methods("GET", "POST")
	user.HandleFunc("/address", userController.ListAddresses).Methods("GET")
	user.HandleFunc("/address/add", userController.AddAddress).Methods("POST")
	user.HandleFunc("/address/select/{index}", userController.SelectAddress).Methods("PATCH")

	// Category routes
	router.HandleFunc("/category/add", categoryController.AddCategory).Methods("POST")
	router.HandleFunc("/category/all", categoryController.AllCategories).Methods("GET")
	router.HandleFunc("/category/update/{id}", categoryController.UpdateCategory).Methods("PATCH")
	router.HandleFunc("/category/remove/{id}", categoryController.RemoveCategory).Methods("DELETE")

	// Product routes; the category listing must be registered before the
	// catch-all {id} route.
	router.HandleFunc("/product/add", productController.AddProduct).Methods("POST")
	router.HandleFunc("/product/category/{categoryId}", productController.ProductsByCategory).Methods("GET")
	router.HandleFunc("/product/update/{id}", productController.UpdateProduct).Methods("PATCH")
	router.HandleFunc("/product/delete/{id}", productController.DeleteProduct).Methods("DELETE")
	router.HandleFunc("/product/{id}", productController.GetProduct).Methods("GET")

	// Cart routes
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(authMiddleware)
	cart.HandleFunc("", cartController.GetCart).Methods("GET")
	cart.HandleFunc("/add", cartController.AddToCart).Methods("POST")
	cart.HandleFunc("/remove/{id}", cartController.RemoveFromCart).Methods("DELETE")
	cart.HandleFunc("/increase/{id}", cartController.IncreaseQuantity).Methods("PATCH")
	cart.HandleFunc("/decrease/{id}", cartController.DecreaseQuantity).Methods("PATCH")

	// Order routes
	order := router.PathPrefix("/order").Subrouter()
	order.Use(authMiddleware)
	order.HandleFunc("/all", orderController.ListOrders).Methods("GET")
	order.HandleFunc("/details/{id}", orderController.GetOrder).Methods("GET")
	order.HandleFunc("/add/{productId}", orderController.PlaceOrder).Methods("POST")
	order.HandleFunc("/return/{orderId}", orderController.ReturnOrder).Methods("PATCH")
	order.HandleFunc("/cancel/{orderId}", orderController.CancelOrder).Methods("DELETE")

	// Admin routes
	admin := order.PathPrefix("/status").Subrouter()
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/{orderId}", orderController.UpdateOrderStatus).Methods("PATCH")
}
