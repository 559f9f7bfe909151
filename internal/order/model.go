package order

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// Typical fulfillment progression; cancelled is reachable from any
// non-terminal status. Not enforced as a strict step machine beyond the
// terminal states.
const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order is the header row. The total is fixed at creation and never changes
// after items are attached.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	Phone           *string     `json:"phone,omitempty"`
	City            *string     `json:"city,omitempty"`
	ShippingAddress *string     `json:"shipping_address,omitempty"`
	MapsLink        *string     `json:"maps_link,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	ProductID       uuid.UUID  `json:"product_id"`
	Quantity        int        `json:"quantity"`
	PriceAtPurchase float64    `json:"price_at_purchase"`
	ProductName     *string    `json:"product_name,omitempty"`
	ProductImageURL *string    `json:"product_image_url,omitempty"`
}

// CustomerProfile is the slice of the profile joined onto admin order views.
type CustomerProfile struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// OrderView is the denormalized admin read: header plus joined customer
// profile and line items.
type OrderView struct {
	Order
	Profile *CustomerProfile `json:"profile,omitempty"`
	Items   []OrderItem      `json:"items"`
}

// Scope selects which orders a list view sees: all of them (admin) or a
// single user's.
type Scope struct {
	UserID *uuid.UUID
}

func AllOrders() Scope {
	return Scope{}
}

func OrdersForUser(userID uuid.UUID) Scope {
	return Scope{UserID: &userID}
}

func (s Scope) Matches(userID uuid.UUID) bool {
	return s.UserID == nil || *s.UserID == userID
}

type CheckoutLine struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
}

type CheckoutParams struct {
	UserID          uuid.UUID
	Lines           []CheckoutLine
	Phone           string
	City            string
	ShippingAddress string
	MapsLink        string
}

// DashboardStats backs the admin home page.
type DashboardStats struct {
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalProducts  int     `json:"total_products"`
	TotalCustomers int     `json:"total_customers"`
	PendingOrders  int     `json:"pending_orders"`
}
