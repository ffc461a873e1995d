// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopcart-api/models"
	"shopcart-api/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	OrderCollection *mongo.Collection
	UserCollection  *mongo.Collection
	EmailService    *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database("ecommerce")
	return &OrderController{
		OrderCollection: db.Collection("orders"),
		UserCollection:  db.Collection("users"),
		EmailService:    emailService,
	}
}

// PlaceOrder converts a single cart line into an order. The order insert and
// the cart-line removal are two separate writes; a crash between them leaves
// the order in place with its cart line still present.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Product not found in user cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}

	index := models.CartLineIndex(user.Cart, productID)
	if index < 0 {
		utils.RespondMessage(w, http.StatusUnauthorized, "Product not found in user cart")
		return
	}
	line := user.Cart[index]

	var body struct {
		Address *models.Address `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	address := body.Address
	if address == nil {
		if selected, ok := user.SelectedAddress(); ok {
			address = &selected
		}
	}
	if address == nil || !address.Complete() {
		utils.RespondMessage(w, http.StatusBadRequest, "Please select an address before placing the order")
		return
	}

	order := models.Order{
		UserID:    user.ID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Address:   *address,
		Status:    models.StatusPending,
		Role:      models.RoleCustomer,
		OrderDate: time.Now(),
	}
	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}

	if _, err := oc.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"cart": bson.M{"productId": productID}},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	go func(email, name string, order models.Order) {
		if err := oc.EmailService.SendOrderPlacedEmail(email, name, order); err != nil {
			log.Printf("Failed to send email to %s: %v", email, err)
		}
	}(user.Email, user.Name, order)

	utils.RespondMessage(w, http.StatusOK, "Order Placed Successfully")
}

// ListOrders retrieves the user's orders, newest first
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"userID": user.ID},
		options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error decoding order")
			return
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Cursor error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, orders)
}

// GetOrder retrieves a single order by ID
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	// An id that cannot be parsed can never match an order.
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "No such order found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "No such order found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

// ReturnOrder moves a delivered order into the return flow. The target state
// is the intermediate "return"; the admin status endpoint completes it to
// "returned".
func (oc *OrderController) ReturnOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var order models.Order
	err = oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondMessage(w, http.StatusNotImplemented, "Failed to retrieve order")
		return
	}

	if order.Status != models.StatusDelivered {
		utils.RespondMessage(w, http.StatusBadRequest, "Order cannot be returned")
		return
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": models.StatusReturn},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Order Marked as Returned Successfully")
}

// CancelOrder cancels an order that has not yet been delivered
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var order models.Order
	err = oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondMessage(w, http.StatusNotImplemented, "Failed to retrieve order")
		return
	}

	if !models.CanTransition(order.Status, models.StatusCancelled) {
		utils.RespondMessage(w, http.StatusBadRequest,
			fmt.Sprintf("%s Order cannot be cancelled", order.Status))
		return
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": models.StatusCancelled},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err == nil {
		go func(email, name string, order models.Order) {
			if err := oc.EmailService.SendOrderCancelledEmail(email, name, order); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(user.Email, user.Name, order)
	}

	utils.RespondMessage(w, http.StatusOK, "Order Cancelled Successfully")
}

// UpdateOrderStatus lets an admin drive the fulfillment chain forward
// (pending to processing to shipped to delivered) and complete returns.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["orderId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidStatus(input.Status) {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var order models.Order
	err = oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	if !models.CanTransition(order.Status, input.Status) {
		utils.RespondMessage(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, input.Status))
		return
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": input.Status},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Order status updated successfully")
}
