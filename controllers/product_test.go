package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newProductController(mt *mtest.T) *ProductController {
	return &ProductController{
		Collection:         mt.Coll,
		CategoryCollection: mt.DB.Collection("categories"),
	}
}

func productDoc(id, categoryID primitive.ObjectID, title string, available bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "price", Value: 49.99},
		{Key: "description", Value: "test product"},
		{Key: "availability", Value: available},
		{Key: "categoryId", Value: categoryID},
		{Key: "images", Value: bson.A{"img1.jpg"}},
	}
}

func TestAddProduct(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	categoryID := primitive.NewObjectID()
	fullBody := func(availability string) string {
		return fmt.Sprintf(`{"title":"Runner","price":59.0,"description":"running shoe",
			"availability":%s,"categoryId":"%s","images":["a.jpg"]}`, availability, categoryID.Hex())
	}

	mt.Run("missing fields", func(mt *mtest.T) {
		pc := newProductController(mt)

		req := httptest.NewRequest(http.MethodPost, "/product/add",
			strings.NewReader(`{"title":"Runner","price":59.0}`))
		w := httptest.NewRecorder()

		pc.AddProduct(w, req)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Please provide all required details")
	})

	mt.Run("unknown category", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ecommerce.categories", mtest.FirstBatch))

		req := httptest.NewRequest(http.MethodPost, "/product/add", strings.NewReader(fullBody("true")))
		w := httptest.NewRecorder()

		pc.AddProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Category not found")
	})

	mt.Run("creates the product", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.categories", mtest.FirstBatch,
				categoryDoc(categoryID, "shoes")),
			mtest.CreateSuccessResponse(),
		)

		req := httptest.NewRequest(http.MethodPost, "/product/add", strings.NewReader(fullBody("true")))
		w := httptest.NewRecorder()

		pc.AddProduct(w, req)

		assert.Equal(mt, http.StatusCreated, w.Code)
		assert.Contains(mt, w.Body.String(), "Product added successfully")
	})

	mt.Run("availability false is still a complete payload", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.categories", mtest.FirstBatch,
				categoryDoc(categoryID, "shoes")),
			mtest.CreateSuccessResponse(),
		)

		req := httptest.NewRequest(http.MethodPost, "/product/add", strings.NewReader(fullBody("false")))
		w := httptest.NewRecorder()

		pc.AddProduct(w, req)

		assert.Equal(mt, http.StatusCreated, w.Code)
	})
}

func TestProductsByCategory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("bad category id", func(mt *mtest.T) {
		pc := newProductController(mt)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodGet, "/product/category/nope", nil),
			map[string]string{"categoryId": "nope"})
		w := httptest.NewRecorder()

		pc.ProductsByCategory(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Category not found")
	})

	mt.Run("lists products in the category", func(mt *mtest.T) {
		pc := newProductController(mt)
		categoryID := primitive.NewObjectID()
		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.categories", mtest.FirstBatch,
				categoryDoc(categoryID, "shoes")),
			mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch,
				productDoc(productID, categoryID, "Runner", true)),
		)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodGet, "/product/category/"+categoryID.Hex(), nil),
			map[string]string{"categoryId": categoryID.Hex()})
		w := httptest.NewRecorder()

		pc.ProductsByCategory(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Runner")
	})
}

func TestGetProduct(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id", func(mt *mtest.T) {
		pc := newProductController(mt)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodGet, "/product/nope", nil),
			map[string]string{"id": "nope"})
		w := httptest.NewRecorder()

		pc.GetProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Product not found")
	})

	mt.Run("unknown product", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch))

		id := primitive.NewObjectID()
		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodGet, "/product/"+id.Hex(), nil),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.GetProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Product not found")
	})

	mt.Run("returns the product", func(mt *mtest.T) {
		pc := newProductController(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "ecommerce.products", mtest.FirstBatch,
			productDoc(id, primitive.NewObjectID(), "Runner", true)))

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodGet, "/product/"+id.Hex(), nil),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.GetProduct(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Runner")
	})
}

func TestUpdateProduct(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown product", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch))

		id := primitive.NewObjectID()
		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodPatch, "/product/update/"+id.Hex(),
				strings.NewReader(`{"price":19.99}`)),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.UpdateProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("partial update", func(mt *mtest.T) {
		pc := newProductController(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch,
				productDoc(id, primitive.NewObjectID(), "Runner", true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodPatch, "/product/update/"+id.Hex(),
				strings.NewReader(`{"price":19.99}`)),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.UpdateProduct(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Product updated successfully")
	})

	mt.Run("moving to an unknown category is rejected", func(mt *mtest.T) {
		pc := newProductController(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch,
				productDoc(id, primitive.NewObjectID(), "Runner", true)),
			mtest.CreateCursorResponse(0, "ecommerce.categories", mtest.FirstBatch),
		)

		body := fmt.Sprintf(`{"categoryId":"%s"}`, primitive.NewObjectID().Hex())
		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodPatch, "/product/update/"+id.Hex(), strings.NewReader(body)),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.UpdateProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Category not found")
	})
}

func TestDeleteProduct(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown product", func(mt *mtest.T) {
		pc := newProductController(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch))

		id := primitive.NewObjectID()
		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodDelete, "/product/delete/"+id.Hex(), nil),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.DeleteProduct(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("deletes the product", func(mt *mtest.T) {
		pc := newProductController(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "ecommerce.products", mtest.FirstBatch,
				productDoc(id, primitive.NewObjectID(), "Runner", true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodDelete, "/product/delete/"+id.Hex(), nil),
			map[string]string{"id": id.Hex()})
		w := httptest.NewRecorder()

		pc.DeleteProduct(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Product deleted successfully")
	})
}
