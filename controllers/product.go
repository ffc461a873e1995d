package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopcart-api/models"
	"shopcart-api/utils"
)

// ProductController handles product-related requests
type ProductController struct {
	Collection         *mongo.Collection
	CategoryCollection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	db := client.Database("ecommerce")
	return &ProductController{
		Collection:         db.Collection("products"),
		CategoryCollection: db.Collection("categories"),
	}
}

// AddProduct creates a new product. Availability is required to be present
// but may be false, so unavailable products can be created up front.
func (pc *ProductController) AddProduct(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title        string   `json:"title"`
		Price        *float64 `json:"price"`
		Description  string   `json:"description"`
		Availability *bool    `json:"availability"`
		CategoryID   string   `json:"categoryId"`
		Images       []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || input.Price == nil || input.Description == "" ||
		input.Availability == nil || input.CategoryID == "" || len(input.Images) == 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Please provide all required details")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var category models.Category
	if err := pc.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	product := models.Product{
		Title:        input.Title,
		Price:        *input.Price,
		Description:  input.Description,
		Availability: *input.Availability,
		CategoryID:   categoryID,
		Images:       input.Images,
	}
	if _, err := pc.Collection.InsertOne(ctx, product); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	utils.RespondMessage(w, http.StatusCreated, "Product added successfully")
}

// ProductsByCategory retrieves all products belonging to a category
func (pc *ProductController) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(mux.Vars(r)["categoryId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var category models.Category
	if err := pc.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	cursor, err := pc.Collection.Find(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
			return
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProduct retrieves a single product by ID
func (pc *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	// An id that cannot be parsed can never match a product.
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct applies a partial update to a product. When the payload moves
// the product to another category, that category must exist.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var payload bson.M
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	delete(payload, "_id")
	delete(payload, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	if raw, ok := payload["categoryId"]; ok {
		hex, ok := raw.(string)
		if !ok {
			utils.RespondMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		categoryID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			utils.RespondMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		var category models.Category
		if err := pc.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
			utils.RespondMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		payload["categoryId"] = categoryID
	}

	if _, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": payload}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product updated successfully")
}

// DeleteProduct removes a product. Cart lines and orders referencing it keep
// their dangling productId.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	if _, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error deleting product")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}
