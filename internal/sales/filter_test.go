package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Search(t *testing.T) {
	data := []Sale{
		{CustomerName: "Alice Smith", PhoneNumber: "555-1234", CustomerRegion: "West"},
		{CustomerName: "Bob Jones", PhoneNumber: "555-9876"},
	}

	got := Filter(data, QuerySpec{Search: "alice"})
	assert.Equal(t, []string{"Alice Smith"}, names(got))

	got = Filter(data, QuerySpec{Search: "9876"})
	assert.Equal(t, []string{"Bob Jones"}, names(got))

	got = Filter(data, QuerySpec{Search: "999"})
	assert.Empty(t, got)
}

func TestFilter_TagsAnyMatch(t *testing.T) {
	data := []Sale{
		{CustomerName: "1", Tags: []string{"a", "b"}},
		{CustomerName: "2", Tags: []string{"b"}},
		{CustomerName: "3", Tags: []string{"c"}},
	}

	got := Filter(data, QuerySpec{Tags: NewSet("b")})
	assert.Equal(t, []string{"1", "2"}, names(got))
}

func TestFilter_CategoricalRequiresValue(t *testing.T) {
	data := []Sale{
		{CustomerName: "west", CustomerRegion: "West", Gender: "Male"},
		{CustomerName: "none", CustomerRegion: "", Gender: "Male"},
		{CustomerName: "east", CustomerRegion: "East", Gender: "Female"},
	}

	got := Filter(data, QuerySpec{Regions: NewSet("West", "East")})
	assert.Equal(t, []string{"west", "east"}, names(got))

	got = Filter(data, QuerySpec{Regions: NewSet("West", "East"), Genders: NewSet("Female")})
	assert.Equal(t, []string{"east"}, names(got))

	// an empty accepted value never matches a missing field
	got = Filter(data, QuerySpec{Regions: NewSet("")})
	assert.Empty(t, got)
}

func TestFilter_ProductCategoryAndPayment(t *testing.T) {
	data := []Sale{
		{CustomerName: "1", ProductCategory: "Beauty", PaymentMethod: "Cash"},
		{CustomerName: "2", ProductCategory: "Beauty", PaymentMethod: "UPI"},
		{CustomerName: "3", ProductCategory: "Clothing", PaymentMethod: "UPI"},
	}

	got := Filter(data, QuerySpec{ProductCategories: NewSet("Beauty"), PaymentMethods: NewSet("UPI")})
	assert.Equal(t, []string{"2"}, names(got))
}

func TestFilter_AgeRangeSkipsMissingAge(t *testing.T) {
	data := []Sale{
		{CustomerName: "absent"},
		{CustomerName: "ten", Age: intPtr(10)},
		{CustomerName: "thirty", Age: intPtr(30)},
		{CustomerName: "seventy", Age: intPtr(70)},
		{CustomerName: "edge", Age: intPtr(65)},
	}

	got := Filter(data, QuerySpec{AgeMin: intPtr(18), AgeMax: intPtr(65)})
	assert.Equal(t, []string{"absent", "thirty", "edge"}, names(got))
}

func TestFilter_DateRangeSkipsMissingDate(t *testing.T) {
	data := []Sale{
		{CustomerName: "absent"},
		{CustomerName: "before", Date: datePtr("2023-12-31")},
		{CustomerName: "first", Date: datePtr("2024-01-01")},
		{CustomerName: "last", Date: datePtr("2024-01-31")},
		{CustomerName: "after", Date: datePtr("2024-02-01")},
	}

	got := Filter(data, QuerySpec{DateFrom: datePtr("2024-01-01"), DateTo: datePtr("2024-01-31")})
	assert.Equal(t, []string{"absent", "first", "last"}, names(got))
}

func TestFilter_SubsetPreservesOrder(t *testing.T) {
	data := []Sale{
		{CustomerName: "e", Quantity: 5, CustomerRegion: "N"},
		{CustomerName: "d", Quantity: 4, CustomerRegion: "S"},
		{CustomerName: "c", Quantity: 3, CustomerRegion: "N"},
		{CustomerName: "b", Quantity: 2, CustomerRegion: "N"},
		{CustomerName: "a", Quantity: 1, CustomerRegion: "S"},
	}

	got := Filter(data, QuerySpec{Regions: NewSet("N")})
	assert.Equal(t, []string{"e", "c", "b"}, names(got))

	all := Filter(data, QuerySpec{})
	assert.Equal(t, names(data), names(all))
}
