package sales

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Canonical raw record keys produced by the ingestion step.
const (
	FieldCustomerID         = "customerId"
	FieldCustomerName       = "customerName"
	FieldPhoneNumber        = "phoneNumber"
	FieldGender             = "gender"
	FieldAge                = "age"
	FieldCustomerRegion     = "customerRegion"
	FieldCustomerType       = "customerType"
	FieldProductID          = "productId"
	FieldProductName        = "productName"
	FieldBrand              = "brand"
	FieldProductCategory    = "productCategory"
	FieldTags               = "tags"
	FieldQuantity           = "quantity"
	FieldPricePerUnit       = "pricePerUnit"
	FieldDiscountPercentage = "discountPercentage"
	FieldTotalAmount        = "totalAmount"
	FieldFinalAmount        = "finalAmount"
	FieldDate               = "date"
	FieldPaymentMethod      = "paymentMethod"
	FieldOrderStatus        = "orderStatus"
	FieldDeliveryType       = "deliveryType"
	FieldStoreID            = "storeId"
	FieldStoreLocation      = "storeLocation"
	FieldSalespersonID      = "salespersonId"
	FieldEmployeeName       = "employeeName"
)

// maxFieldInt bounds integer-valued fields; larger magnitudes are malformed.
const maxFieldInt = math.MaxInt32

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Normalize converts a raw record into a Sale. It never fails: missing or
// malformed values fall back to the field's zero value.
func Normalize(raw map[string]string) Sale {
	return Sale{
		CustomerID:         raw[FieldCustomerID],
		CustomerName:       raw[FieldCustomerName],
		PhoneNumber:        raw[FieldPhoneNumber],
		Gender:             raw[FieldGender],
		Age:                parseOptionalInt(raw[FieldAge]),
		CustomerRegion:     raw[FieldCustomerRegion],
		CustomerType:       raw[FieldCustomerType],
		ProductID:          raw[FieldProductID],
		ProductName:        raw[FieldProductName],
		Brand:              raw[FieldBrand],
		ProductCategory:    raw[FieldProductCategory],
		Tags:               splitTags(raw[FieldTags]),
		Quantity:           parseQuantity(raw[FieldQuantity]),
		PricePerUnit:       parseAmount(raw[FieldPricePerUnit]),
		DiscountPercentage: parseAmount(raw[FieldDiscountPercentage]),
		TotalAmount:        parseAmount(raw[FieldTotalAmount]),
		FinalAmount:        parseAmount(raw[FieldFinalAmount]),
		Date:               parseDate(raw[FieldDate]),
		PaymentMethod:      raw[FieldPaymentMethod],
		OrderStatus:        raw[FieldOrderStatus],
		DeliveryType:       raw[FieldDeliveryType],
		StoreID:            raw[FieldStoreID],
		StoreLocation:      raw[FieldStoreLocation],
		SalespersonID:      raw[FieldSalespersonID],
		EmployeeName:       raw[FieldEmployeeName],
	}
}

// NormalizeAll normalizes every raw record, preserving input order.
func NormalizeAll(raw []map[string]string) []Sale {
	out := make([]Sale, len(raw))
	for i, r := range raw {
		out[i] = Normalize(r)
	}
	return out
}

func splitTags(v string) []string {
	if v == "" {
		return []string{}
	}
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '|' })
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseAmount(v string) float64 {
	f, _ := parseNumber(v)
	return f
}

// parseInt truncates v to an int, rejecting values outside ±maxFieldInt.
func parseInt(v string) (int, bool) {
	f, ok := parseNumber(v)
	if !ok || math.Abs(f) > maxFieldInt {
		return 0, false
	}
	return int(f), true
}

func parseQuantity(v string) int {
	n, ok := parseInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func parseOptionalInt(v string) *int {
	n, ok := parseInt(v)
	if !ok {
		return nil
	}
	return &n
}

// parseDate returns the UTC calendar date of v, or nil when v is empty or
// matches none of the accepted layouts.
func parseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		t = t.UTC()
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}
