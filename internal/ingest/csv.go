// Package ingest reads sales CSV exports into raw records keyed by
// canonical field names.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("csv input has no header row")

type headerRule struct {
	match func(h string) bool
	field string
}

func contains(sub string) func(string) bool {
	return func(h string) bool { return strings.Contains(h, sub) }
}

func equals(v string) func(string) bool {
	return func(h string) bool { return h == v }
}

func either(fs ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, f := range fs {
			if f(h) {
				return true
			}
		}
		return false
	}
}

// headerRules are evaluated in order; the first match wins.
var headerRules = []headerRule{
	{contains("customer id"), "customerId"},
	{contains("customer name"), "customerName"},
	{contains("phone"), "phoneNumber"},
	{contains("gender"), "gender"},
	{contains("discount"), "discountPercentage"},
	{either(equals("age"), contains("customer age")), "age"},
	{either(contains("customer region"), equals("region")), "customerRegion"},
	{contains("customer type"), "customerType"},
	{contains("product id"), "productId"},
	{contains("product name"), "productName"},
	{contains("brand"), "brand"},
	{either(contains("product category"), equals("category")), "productCategory"},
	{contains("tag"), "tags"},
	{either(equals("quantity"), contains("qty")), "quantity"},
	{contains("price per unit"), "pricePerUnit"},
	{contains("total amount"), "totalAmount"},
	{contains("final amount"), "finalAmount"},
	{contains("date"), "date"},
	{contains("payment"), "paymentMethod"},
	{contains("order status"), "orderStatus"},
	{contains("delivery type"), "deliveryType"},
	{contains("store id"), "storeId"},
	{either(contains("store location"), contains("location")), "storeLocation"},
	{contains("salesperson id"), "salespersonId"},
	{contains("employee name"), "employeeName"},
}

// CanonicalHeader maps a CSV column header to its canonical field name.
// Unknown headers have their whitespace removed and first letter lowered.
func CanonicalHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return ""
	}
	for _, r := range headerRules {
		if r.match(h) {
			return r.field
		}
	}

	stripped := strings.Join(strings.Fields(header), "")
	first, size := utf8.DecodeRuneInString(stripped)
	return string(unicode.ToLower(first)) + stripped[size:]
}

// Parse reads CSV from r. The first row is the header; every following
// row becomes one record. Short rows leave trailing fields unset.
func Parse(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		keys[i] = CanonicalHeader(h)
	}

	records := make([]map[string]string, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}

		rec := make(map[string]string, len(keys))
		for i, v := range row {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			rec[keys[i]] = v
		}
		records = append(records, rec)
	}

	return records, nil
}
