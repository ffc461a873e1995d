package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopcart-api/models"
	"shopcart-api/utils"
)

// CategoryController handles category-related requests
type CategoryController struct {
	Collection *mongo.Collection
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(client *mongo.Client) *CategoryController {
	return &CategoryController{
		Collection: client.Database("ecommerce").Collection("categories"),
	}
}

// AddCategory creates a new category with a lower-cased name
func (cc *CategoryController) AddCategory(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Category == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Please provide the category name")
		return
	}
	name := strings.ToLower(input.Category)

	// Existence check and insert are two round trips; a concurrent add for
	// the same name can slip between them.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := cc.Collection.CountDocuments(ctx, bson.M{"category": name})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondMessage(w, http.StatusConflict, "Category already exists")
		return
	}

	if _, err := cc.Collection.InsertOne(ctx, models.Category{Name: name}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error creating category")
		return
	}

	utils.RespondMessage(w, http.StatusCreated, "Category added successfully")
}

// AllCategories retrieves every category
func (cc *CategoryController) AllCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	for cursor.Next(ctx) {
		var category models.Category
		if err := cursor.Decode(&category); err != nil {
			utils.RespondMessage(w, http.StatusInternalServerError, "Error reading categories")
			return
		}
		categories = append(categories, category)
	}
	if err := cursor.Err(); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error reading categories")
		return
	}

	utils.RespondJSON(w, http.StatusOK, categories)
}

// UpdateCategory renames an existing category
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Category == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Please provide the category name")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var category models.Category
	if err := cc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	if _, err := cc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"category": strings.ToLower(input.Category)},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating category")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Category updated successfully")
}

// RemoveCategory deletes a category. Products referencing it are left with a
// dangling categoryId.
func (cc *CategoryController) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var category models.Category
	if err := cc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	if _, err := cc.Collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error deleting category")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Category deleted successfully")
}
