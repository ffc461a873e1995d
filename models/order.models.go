package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. "return" is the intermediate state a delivered order enters
// when the customer asks for a return; "returned" is the terminal state once
// the return completes.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusReturn     = "return"
	StatusReturned   = "returned"
)

// Order roles.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// Order is a snapshot of a single cart line at checkout time. The quantity
// and address are copied into the order; the source cart line is removed as
// part of placement. Orders are never deleted, only moved through statuses.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userID" json:"userID"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Address   Address            `bson:"address" json:"address"`
	Status    string             `bson:"status" json:"status"`
	Role      string             `bson:"role" json:"role"`
	OrderDate time.Time          `bson:"orderDate" json:"orderDate"`
}

// transitions holds the legal status moves. Cancellation is only possible
// before delivery; a delivered order can enter the return flow.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusReturn},
	StatusReturn:     {StatusReturned},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusCancelled, StatusReturn, StatusReturned:
		return true
	}
	return false
}
