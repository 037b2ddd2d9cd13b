package familyshop

import "time"

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	UserID   int64  `json:"user_id"`
}

type Product struct {
	ID            int64   `json:"id"`
	CategoryID    int64   `json:"category_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	Stock         int     `json:"stock"`
	Image         string  `json:"image"`
}

// OrderItem captures the product snapshot at order time.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
}

type Order struct {
	ID              int64       `json:"id"`
	ClientID        int64       `json:"client_id"`
	AdminID         int64       `json:"admin_id"`
	Client          *User       `json:"client,omitempty"`
	Products        []OrderItem `json:"products"`
	Total           float64     `json:"total"`
	Subscription    float64     `json:"subscription"`
	Remaining       float64     `json:"remaining"`
	Approved        bool        `json:"approved"`
	Status          string      `json:"status"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	Payments        []Payment   `json:"payments,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Order statuses are free-form strings on the wire; these are the
// values the backend is known to emit.
const (
	OrderPending   = "pending"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRejected  = "rejected"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
)

type Payment struct {
	ID              int64         `json:"id"`
	OrderID         int64         `json:"order_id"`
	Order           *OrderSummary `json:"order,omitempty"`
	Amount          float64       `json:"amount"`
	Method          PaymentMethod `json:"method"`
	Reference       string        `json:"reference,omitempty"`
	Proof           string        `json:"proof,omitempty"`
	UserID          int64         `json:"user_id"`
	Verified        bool          `json:"verified"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// OrderSummary is the denormalized order slice embedded in payments.
type OrderSummary struct {
	ID        int64   `json:"id"`
	ClientID  int64   `json:"client_id"`
	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`
	Status    string  `json:"status"`
}

type NotificationType string

const (
	NotifyPaymentVerified   NotificationType = "payment_verified"
	NotifyOrderStatusUpdate NotificationType = "order_status_update"
	NotifyOrderRejected     NotificationType = "order_rejected"
	NotifyPaymentRejected   NotificationType = "payment_rejected"
	NotifyNewOrder          NotificationType = "new_order"
	NotifyNewPayment        NotificationType = "new_payment"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	RelatedID int64            `json:"related_id"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Premium      bool         `json:"premium"`
	PremiumUntil *time.Time   `json:"premium_until,omitempty"`
	AdminID      *int64       `json:"admin_id,omitempty"`
	RateBs       float64      `json:"rate_bs"`
	RatePesos    float64      `json:"rate_pesos"`
	Currency     string       `json:"currency"`
	PaymentInfo  *PaymentInfo `json:"payment_info,omitempty"`
}

// PaymentInfo is the admin's collection configuration shown to clients.
type PaymentInfo struct {
	Bank          string `json:"bank"`
	AccountNumber string `json:"account_number"`
	Holder        string `json:"holder"`
	Document      string `json:"document"`
}
