package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopcart-api/models"
	"shopcart-api/utils"
)

// CartController handles cart-related requests. The cart lives inside the
// user document, so every operation reads and writes the users collection.
type CartController struct {
	UserCollection    *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client) *CartController {
	db := client.Database("ecommerce")
	return &CartController{
		UserCollection:    db.Collection("users"),
		ProductCollection: db.Collection("products"),
	}
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := cc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	cart := user.Cart
	if cart == nil {
		cart = []models.CartLine{}
	}
	utils.RespondJSON(w, http.StatusOK, cart)
}

// AddToCart appends a new cart line. A product already in the cart is
// rejected rather than merged.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < models.MinCartQuantity || input.Quantity > models.MaxCartQuantity {
		utils.RespondMessage(w, http.StatusBadRequest,
			fmt.Sprintf("Quantity must be between %d and %d", models.MinCartQuantity, models.MaxCartQuantity))
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := cc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	var product models.Product
	if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID, "availability": true}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product is not available")
		return
	}

	// The membership check and the push are separate round trips; two
	// concurrent adds for the same product can both pass the check.
	if models.CartLineIndex(user.Cart, productID) >= 0 {
		utils.RespondMessage(w, http.StatusConflict, "Product already in cart")
		return
	}

	if _, err := cc.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"cart": models.CartLine{ProductID: productID, Quantity: input.Quantity}},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product added to cart")
}

// RemoveFromCart removes a cart line
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := cc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if models.CartLineIndex(user.Cart, productID) < 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found in cart")
		return
	}

	if _, err := cc.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"cart": bson.M{"productId": productID}},
	}); err != nil {
		utils.RespondMessage(w, http.StatusNotImplemented, "Error updating cart")
		return
	}

	utils.RespondMessage(w, http.StatusOK, fmt.Sprintf("Product with ID %s removed from cart", productID.Hex()))
}

// IncreaseQuantity increments a cart line's quantity, capped at the maximum
func (cc *CartController) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	cc.changeQuantity(w, r, 1)
}

// DecreaseQuantity decrements a cart line's quantity, floored at the minimum
func (cc *CartController) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	cc.changeQuantity(w, r, -1)
}

func (cc *CartController) changeQuantity(w http.ResponseWriter, r *http.Request, delta int) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := cc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	index := models.CartLineIndex(user.Cart, productID)
	if index < 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found in cart")
		return
	}

	// The bounds are reported with a not-found status, matching the
	// behavior callers already depend on.
	quantity := user.Cart[index].Quantity
	if delta > 0 && quantity >= models.MaxCartQuantity {
		utils.RespondMessage(w, http.StatusNotFound, "You cannot add more than 10 items")
		return
	}
	if delta < 0 && quantity <= models.MinCartQuantity {
		utils.RespondMessage(w, http.StatusNotFound, "You cannot decrease less than one item")
		return
	}

	if _, err := cc.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": delta}},
	); err != nil {
		utils.RespondMessage(w, http.StatusNotImplemented, "Error updating cart")
		return
	}

	utils.RespondMessage(w, http.StatusOK, fmt.Sprintf("Quantity updated for product with ID %s", productID.Hex()))
}
