package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Reconciliation sub-status of an order, decided once stock bookkeeping for
// every line has finished.
const (
	ReconcilePending            = "pending"
	ReconcileDone               = "reconciled"
	ReconcilePartiallyFulfilled = "partially_fulfilled"
	ReconcileNeedsReview        = "needs_review"
)

const (
	ChannelOnline = "online"
	ChannelPOS    = "pos"

	// POSUserID is the user reference stored on counter sales.
	POSUserID = "admin_pos"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

type Product struct {
	ID            string    `gorm:"primaryKey;size:64"         json:"id"`
	Name          string    `gorm:"not null"                   json:"name"`
	Category      string    `gorm:"index"                      json:"category"`
	Description   string    `                                  json:"description"`
	Featured      bool      `gorm:"not null"                   json:"featured"`
	ImageURL      string    `                                  json:"image_url"`
	Price         int64     `gorm:"not null"                   json:"price"`
	StockQuantity int64     `gorm:"not null"                   json:"stock_quantity"`
	SoldCount     int64     `gorm:"not null"                   json:"sold_count"`
	Variants      Variants  `gorm:"type:text"                  json:"variants"`
	AverageRating float64   `gorm:"not null;default:0"         json:"average_rating"`
	ReviewCount   int64     `gorm:"not null;default:0"         json:"total_reviews"`
	Version       int64     `gorm:"not null"                   json:"-"`
	CreatedAt     time.Time `                                  json:"created_at"`
	UpdatedAt     time.Time `                                  json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

type User struct {
	ID           string    `gorm:"primaryKey;size:128"        json:"id"`
	Email        string    `gorm:"index"                      json:"email"`
	DisplayName  string    `                                  json:"display_name"`
	Phone        string    `                                  json:"phone_number"`
	City         string    `                                  json:"city"`
	Role         string    `gorm:"not null;default:user"      json:"role"`
	OrderUpdates bool      `gorm:"not null"                   json:"order_updates"`
	Addresses    Addresses `gorm:"type:text"                  json:"addresses"`
	CreatedAt    time.Time `                                  json:"created_at"`
	UpdatedAt    time.Time `                                  json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Order struct {
	ID             string          `gorm:"primaryKey;size:64"   json:"id"`
	UserID         string          `gorm:"index;not null"       json:"user_id"`
	UserEmail      string          `                            json:"user_email"`
	UserPhone      string          `                            json:"user_phone"`
	Shipping       Address         `gorm:"type:text"            json:"shipping_details"`
	Items          OrderItems      `gorm:"type:text"            json:"items"`
	Subtotal       int64           `gorm:"not null"             json:"subtotal"`
	Discount       DiscountDetails `gorm:"type:text"            json:"discount_details"`
	ShippingCost   int64           `gorm:"not null"             json:"shipping_cost"`
	TaxAmount      int64           `gorm:"not null"             json:"tax_amount"`
	TotalAmount    int64           `gorm:"not null"             json:"total_amount"`
	Status         OrderStatus     `gorm:"index;not null;size:16" json:"status"`
	PaymentMode    string          `gorm:"not null"             json:"payment_mode"`
	Channel        string          `gorm:"not null;size:16"     json:"channel"`
	Reconciliation string          `gorm:"not null;size:32"     json:"reconciliation"`
	CreatedAt      time.Time       `gorm:"index"                json:"date"`
	UpdatedAt      time.Time       `                            json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type Coupon struct {
	Code        string    `gorm:"primaryKey;size:64"  json:"code"`
	Discount    int64     `gorm:"not null"            json:"discount"`
	IsActive    bool      `gorm:"not null"            json:"is_active"`
	Description string    `                           json:"description"`
	CreatedAt   time.Time `                           json:"created_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Cart is the persisted state of a storefront cart or an in-progress POS bill.
type Cart struct {
	Key       string    `gorm:"column:cart_key;primaryKey;size:160"`
	Lines     CartLines `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time
}

func (Cart) TableName() string {
	return "carts"
}

const (
	MovementApplied = "applied"
	MovementFailed  = "failed"
	MovementAborted = "aborted"
)

// StockMovement is one entry of the reconciliation ledger: the outcome of
// applying an order line to a product's stock.
type StockMovement struct {
	ID        string    `gorm:"primaryKey;size:36"   json:"id"`
	OrderID   string    `gorm:"index;not null"       json:"order_id"`
	ProductID string    `gorm:"index;not null"       json:"product_id"`
	Unit      string    `                            json:"unit,omitempty"`
	Delta     int64     `gorm:"not null"             json:"delta"`
	Status    string    `gorm:"not null;size:16"     json:"status"`
	Error     string    `                            json:"error,omitempty"`
	Attempts  int       `gorm:"not null"             json:"attempts"`
	CreatedAt time.Time `                            json:"created_at"`
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// Category is a storefront section. Slug is what products carry in their
// category column.
type Category struct {
	Slug      string    `gorm:"primaryKey;size:64"  json:"value"`
	Name      string    `gorm:"not null"            json:"name"`
	IsActive  bool      `gorm:"not null"            json:"is_active"`
	CreatedAt time.Time `                           json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

type Review struct {
	ID        string    `gorm:"primaryKey;size:36"   json:"id"`
	ProductID string    `gorm:"index;not null"       json:"product_id"`
	UserID    string    `gorm:"index;not null"       json:"user_id"`
	UserName  string    `                            json:"user_name"`
	Rating    int64     `gorm:"not null"             json:"rating"`
	Comment   string    `gorm:"not null"             json:"comment"`
	Edited    bool      `gorm:"not null"             json:"is_edited"`
	CreatedAt time.Time `gorm:"index"                json:"date"`
	UpdatedAt time.Time `                            json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}

const (
	InquiryUnread = "Unread"
	InquiryRead   = "Read"
)

// Inquiry is a message left through the public contact form.
type Inquiry struct {
	ID        string    `gorm:"primaryKey;size:36"     json:"id"`
	Name      string    `gorm:"not null"               json:"name"`
	Email     string    `gorm:"not null"               json:"email"`
	Subject   string    `                              json:"subject"`
	Message   string    `gorm:"not null"               json:"message"`
	Status    string    `gorm:"index;not null;size:16" json:"status"`
	CreatedAt time.Time `gorm:"index"                  json:"date"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (Inquiry) TableName() string {
	return "inquiries"
}

// WishlistItem is a product a user saved for later, with the price shown
// when it was saved.
type WishlistItem struct {
	UserID    string    `gorm:"primaryKey;size:128"  json:"-"`
	ProductID string    `gorm:"primaryKey;size:64"   json:"id"`
	Name      string    `                            json:"name"`
	Price     int64     `gorm:"not null"             json:"price"`
	ImageURL  string    `                            json:"image_url"`
	AddedAt   time.Time `gorm:"index"                json:"added_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

func All() []any {
	return []any{
		&Product{}, &User{}, &Order{}, &Coupon{}, &Cart{}, &StockMovement{},
		&Category{}, &Review{}, &Inquiry{}, &WishlistItem{},
	}
}
