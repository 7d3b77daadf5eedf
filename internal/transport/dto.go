package transport

import "github.com/Skotchmaster/nk_store/internal/models"

type CreateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Featured      bool            `json:"featured"`
	ImageURL      string          `json:"image_url"`
	Price         int64           `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	Variants      models.Variants `json:"variants"`
}

type PatchProductRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Featured      *bool            `json:"featured"`
	ImageURL      *string          `json:"image_url"`
	Price         *int64           `json:"price"`
	StockQuantity *int64           `json:"stock_quantity"`
	Variants      *models.Variants `json:"variants"`
}

type AddCartLineRequest struct {
	ProductID string `json:"product_id"`
	Unit      string `json:"unit"`
}

type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type CheckoutRequest struct {
	Shipping    *models.Address `json:"shipping_details"`
	AddressID   string          `json:"address_id"`
	PaymentMode string          `json:"payment_mode"`
	CouponCode  string          `json:"coupon_code"`
}

type POSCheckoutRequest struct {
	// Lines is optional; when empty the staff member's saved bill is used.
	Lines           models.CartLines `json:"lines"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	DiscountPercent int64            `json:"discount_percent"`
	GSTRate         int64            `json:"gst_rate"`
	PaymentMode     string           `json:"payment_mode"`
}

type CreateCouponRequest struct {
	Code        string `json:"code"`
	Discount    int64  `json:"discount"`
	Description string `json:"description"`
}

type SetCouponActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type SettingsRequest struct {
	OrderUpdates bool `json:"order_updates"`
}

type ProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone_number"`
	City        *string `json:"city"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type SetCategoryActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type ReviewRequest struct {
	Rating  int64  `json:"rating"`
	Comment string `json:"comment"`
}

type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
