package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopcart-api/middleware"
	"shopcart-api/utils"
)

// authUserID extracts the authenticated user's identifier from the request
// context populated by the auth middleware.
func authUserID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
