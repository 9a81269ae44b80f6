package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment method tags stored on an order.
const (
	PaymentMethodCOD      = "COD"
	PaymentMethodStripe   = "Stripe"
	PaymentMethodRazorpay = "Razorpay"
)

// Fulfillment statuses, in delivery order. Any status may be written over any
// other; the admin panel drives transitions and no ordering is enforced.
const (
	StatusPlaced         = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// OrderStatuses lists every status the order service will accept.
var OrderStatuses = []string{
	StatusPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// OrderItem is one product+size+quantity line inside an order. Name and Price
// are snapshots taken at checkout time so later catalog edits do not rewrite
// order history.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Size      string  `json:"size" bson:"size,omitempty"`
}

// Address is the structured shipping address captured at checkout.
type Address struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email,omitempty"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Zipcode   string `json:"zipcode" bson:"zipcode"`
	Country   string `json:"country" bson:"country"`
	Phone     string `json:"phone" bson:"phone"`
}

// Order is a customer order document. Amount always equals the sum of
// price*quantity over Items plus the delivery charge. Payment is flipped only
// by the payment verification step; Status only by admin action.
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"userId" bson:"userId"`
	Items         []OrderItem        `json:"items" bson:"items"`
	Address       Address            `json:"address" bson:"address"`
	Amount        float64            `json:"amount" bson:"amount"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	Payment       bool               `json:"payment" bson:"payment"`
	Status        string             `json:"status" bson:"status"`
	Date          time.Time          `json:"date" bson:"date"`
}

// ItemsTotal sums price*quantity over the order's line items, without the
// delivery charge.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
