package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopcart-api/middleware"
	"shopcart-api/models"
	"shopcart-api/utils"
)

// authedRequest builds a request carrying the claims the auth middleware
// would have attached.
func authedRequest(method, target string, body io.Reader, userID primitive.ObjectID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	claims := &utils.Claims{UserID: userID.Hex(), Role: models.RoleCustomer}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

// userDoc builds a user document for mock cursor responses.
func userDoc(id primitive.ObjectID, password string, cart bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Asha"},
		{Key: "phone", Value: "9999999999"},
		{Key: "email", Value: "asha@example.com"},
		{Key: "password", Value: password},
		{Key: "role", Value: models.RoleCustomer},
		{Key: "cart", Value: cart},
		{Key: "address", Value: bson.A{}},
	}
}

// cartLineDoc builds an embedded cart line.
func cartLineDoc(productID primitive.ObjectID, quantity int) bson.D {
	return bson.D{
		{Key: "productId", Value: productID},
		{Key: "quantity", Value: quantity},
	}
}

// orderDoc builds an order document for mock cursor responses.
func orderDoc(id, userID, productID primitive.ObjectID, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userID", Value: userID},
		{Key: "productId", Value: productID},
		{Key: "quantity", Value: 3},
		{Key: "address", Value: bson.D{
			{Key: "pincode", Value: "682001"},
			{Key: "state", Value: "Kerala"},
			{Key: "city", Value: "Kochi"},
			{Key: "road_name", Value: "MG Road"},
		}},
		{Key: "status", Value: status},
		{Key: "role", Value: "customer"},
		{Key: "orderDate", Value: primitive.NewDateTimeFromTime(time.Now())},
	}
}
