package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"shopcart-api/middleware"
	"shopcart-api/models"
	"shopcart-api/utils"
)

// UserController handles account, session and address book requests
type UserController struct {
	Collection *mongo.Collection
	Tokens     *utils.TokenManager
	BcryptCost int
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client, tokens *utils.TokenManager, bcryptCost int) *UserController {
	return &UserController{
		Collection: client.Database("ecommerce").Collection("users"),
		Tokens:     tokens,
		BcryptCost: bcryptCost,
	}
}

// Signup handles user registration
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Please provide all fields")
		return
	}

	// Check if a user with this email already exists
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondMessage(w, http.StatusConflict, "Email already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.BcryptCost)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleCustomer,
		Cart:      []models.CartLine{},
		Addresses: []models.Address{},
	}
	if _, err := uc.Collection.InsertOne(ctx, user); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.RespondMessage(w, http.StatusCreated, "User Registered Successfully")
}

// Login handles user authentication and sets the session cookie
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Provide email and password to login")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Wrong Credentials")
		return
	}

	// Accounts created before roles were stored carry no role field.
	role := user.Role
	if role == "" {
		role = models.RoleCustomer
	}
	token, err := uc.Tokens.Generate(user.ID.Hex(), role)
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(uc.Tokens.TTL),
	})

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login Successful",
		"userInfo": user,
	})
}

// Details retrieves the authenticated user's profile
func (uc *UserController) Details(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusBadRequest, "Could not parse user from context")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

// Logout clears the session cookie
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(middleware.SessionCookieName); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "You are already logged out")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})

	utils.RespondMessage(w, http.StatusOK, "Successfully logged out")
}

// AddAddress appends an address to the user's address book
func (uc *UserController) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !address.Complete() {
		utils.RespondMessage(w, http.StatusBadRequest, "Please provide all address fields")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"address": address},
	})
	if err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating address book")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Address added successfully")
}

// ListAddresses returns the user's address book
func (uc *UserController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	addresses := user.Addresses
	if addresses == nil {
		addresses = []models.Address{}
	}
	utils.RespondJSON(w, http.StatusOK, addresses)
}

// SelectAddress marks a single address in the book as the selected one
func (uc *UserController) SelectAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid address index")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if index >= len(user.Addresses) {
		utils.RespondMessage(w, http.StatusNotFound, "Address not found")
		return
	}

	for i := range user.Addresses {
		user.Addresses[i].IsSelected = i == index
	}
	if _, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"address": user.Addresses},
	}); err != nil {
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating address book")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Address selected")
}
