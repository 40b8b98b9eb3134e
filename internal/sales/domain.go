package sales

import "time"

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Sale represents one normalized retail transaction. Age and Date are nil
// when the source value was missing or unparseable.
type Sale struct {
	CustomerID     string
	CustomerName   string
	PhoneNumber    string
	Gender         string
	Age            *int
	CustomerRegion string
	CustomerType   string

	ProductID       string
	ProductName     string
	Brand           string
	ProductCategory string
	Tags            []string

	Quantity           int
	PricePerUnit       float64
	DiscountPercentage float64
	TotalAmount        float64
	FinalAmount        float64
	Date               *time.Time
	PaymentMethod      string
	OrderStatus        string
	DeliveryType       string

	StoreID       string
	StoreLocation string
	SalespersonID string
	EmployeeName  string
}

// SaleView is the wire projection of a Sale.
type SaleView struct {
	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            *int   `json:"age"`
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	ProductCategory string   `json:"productCategory"`
	Tags            []string `json:"tags"`

	Quantity           int     `json:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalAmount        float64 `json:"totalAmount"`
	FinalAmount        float64 `json:"finalAmount"`
	Date               *string `json:"date"`
	PaymentMethod      string  `json:"paymentMethod"`
	OrderStatus        string  `json:"orderStatus"`
	DeliveryType       string  `json:"deliveryType"`

	StoreID       string `json:"storeId"`
	StoreLocation string `json:"storeLocation"`
	SalespersonID string `json:"salespersonId"`
	EmployeeName  string `json:"employeeName"`
}

// View renders the sale for the API, with its date as YYYY-MM-DD.
func (s Sale) View() SaleView {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return SaleView{
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		PhoneNumber:        s.PhoneNumber,
		Gender:             s.Gender,
		Age:                s.Age,
		CustomerRegion:     s.CustomerRegion,
		CustomerType:       s.CustomerType,
		ProductID:          s.ProductID,
		ProductName:        s.ProductName,
		Brand:              s.Brand,
		ProductCategory:    s.ProductCategory,
		Tags:               tags,
		Quantity:           s.Quantity,
		PricePerUnit:       s.PricePerUnit,
		DiscountPercentage: s.DiscountPercentage,
		TotalAmount:        s.TotalAmount,
		FinalAmount:        s.FinalAmount,
		Date:               formatDate(s.Date),
		PaymentMethod:      s.PaymentMethod,
		OrderStatus:        s.OrderStatus,
		DeliveryType:       s.DeliveryType,
		StoreID:            s.StoreID,
		StoreLocation:      s.StoreLocation,
		SalespersonID:      s.SalespersonID,
		EmployeeName:       s.EmployeeName,
	}
}

// FilterOptions lists the distinct values available for each categorical filter.
type FilterOptions struct {
	Regions           []string `json:"regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	Tags              []string `json:"tags"`
	PaymentMethods    []string `json:"paymentMethods"`
}

// Filters is the effective filter set echoed back with each page.
type Filters struct {
	Regions           []string `json:"regions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	Tags              []string `json:"tags"`
	PaymentMethods    []string `json:"paymentMethods"`
	AgeMin            *int     `json:"ageMin"`
	AgeMax            *int     `json:"ageMax"`
	DateFrom          *string  `json:"dateFrom"`
	DateTo            *string  `json:"dateTo"`
	Search            string   `json:"search"`
}

// PageResult is one page of matching sales plus pagination metadata.
type PageResult struct {
	Data       []SaleView `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
	HasNext    bool       `json:"hasNext"`
	HasPrev    bool       `json:"hasPrev"`
	SortBy     string     `json:"sortBy"`
	SortDir    string     `json:"sortDir"`
	Filters    Filters    `json:"filters"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
