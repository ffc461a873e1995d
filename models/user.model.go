package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart quantity bounds enforced on every cart mutation.
const (
	MinCartQuantity = 1
	MaxCartQuantity = 10
)

// CartLine is one product entry inside a user's embedded cart. A cart holds
// at most one line per product.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Address represents a delivery address in the user's address book
type Address struct {
	Pincode    string `bson:"pincode" json:"pincode"`
	State      string `bson:"state" json:"state"`
	City       string `bson:"city" json:"city"`
	RoadName   string `bson:"road_name" json:"road_name"`
	IsSelected bool   `bson:"isSelected" json:"isSelected"`
}

// Complete reports whether every required address field is filled in.
func (a Address) Complete() bool {
	return a.Pincode != "" && a.State != "" && a.City != "" && a.RoadName != ""
}

// User represents a registered customer. The cart and the address book are
// embedded in the user document rather than stored as separate collections.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Cart      []CartLine         `bson:"cart" json:"cart"`
	Addresses []Address          `bson:"address" json:"address"`
}

// CartLineIndex returns the position of the line for productID in cart, or -1
// if the product is not in the cart.
func CartLineIndex(cart []CartLine, productID primitive.ObjectID) int {
	for i, line := range cart {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// SelectedAddress returns the address currently marked as selected.
func (u *User) SelectedAddress() (Address, bool) {
	for _, addr := range u.Addresses {
		if addr.IsSelected {
			return addr, true
		}
	}
	return Address{}, false
}
