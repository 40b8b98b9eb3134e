package sales

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Request parameter names accepted by Parse.
const (
	ParamPage            = "page"
	ParamPageSize        = "pageSize"
	ParamSearch          = "search"
	ParamRegion          = "region"
	ParamGender          = "gender"
	ParamProductCategory = "productCategory"
	ParamTags            = "tags"
	ParamPaymentMethod   = "paymentMethod"
	ParamAgeMin          = "ageMin"
	ParamAgeMax          = "ageMax"
	ParamDateFrom        = "dateFrom"
	ParamDateTo          = "dateTo"
	ParamSortBy          = "sortBy"
	ParamSortDir         = "sortDir"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// SortKey selects the comparator used by the sort stage.
type SortKey int

const (
	SortByDate SortKey = iota
	SortByQuantity
	SortByCustomerName
)

// ParseSortKey maps a sortBy value to its key. Unknown values sort by date.
func ParseSortKey(v string) SortKey {
	switch v {
	case "quantity":
		return SortByQuantity
	case "customerName":
		return SortByCustomerName
	default:
		return SortByDate
	}
}

func (k SortKey) String() string {
	switch k {
	case SortByQuantity:
		return "quantity"
	case SortByCustomerName:
		return "customerName"
	default:
		return "date"
	}
}

// SortDir is the sort direction.
type SortDir int

const (
	Desc SortDir = iota
	Asc
)

func (d SortDir) String() string {
	if d == Asc {
		return "asc"
	}
	return "desc"
}

// multiplier is applied to a three-way comparison result.
func (d SortDir) multiplier() int {
	if d == Asc {
		return 1
	}
	return -1
}

// Set is an accepted-set for one categorical dimension. An empty set
// does not restrict the dimension.
type Set map[string]struct{}

// NewSet builds a set from the given values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is a member of the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// QuerySpec is a validated query.
type QuerySpec struct {
	Regions           Set
	Genders           Set
	ProductCategories Set
	Tags              Set
	PaymentMethods    Set

	AgeMin   *int
	AgeMax   *int
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string

	SortBy  SortKey
	SortDir SortDir

	Page     int
	PageSize int

	// request values kept for echoing back
	lists     map[string][]string
	sortByRaw string
}

// InvalidRangeError reports a range whose lower bound exceeds its upper bound.
type InvalidRangeError struct {
	Field   string
	Message string
}

func (e *InvalidRangeError) Error() string {
	return e.Message
}

// Parse validates raw request parameters into a QuerySpec. A missing key
// and an empty value are both treated as absent.
func Parse(params map[string]string) (QuerySpec, error) {
	spec := QuerySpec{
		Page:     intOrDefault(params[ParamPage], defaultPage),
		PageSize: intOrDefault(params[ParamPageSize], defaultPageSize),
		Search:   strings.TrimSpace(params[ParamSearch]),
		lists:    make(map[string][]string, 5),
	}

	for _, name := range []string{ParamRegion, ParamGender, ParamProductCategory, ParamTags, ParamPaymentMethod} {
		spec.lists[name] = parseList(params[name])
	}
	spec.Regions = NewSet(spec.lists[ParamRegion]...)
	spec.Genders = NewSet(spec.lists[ParamGender]...)
	spec.ProductCategories = NewSet(spec.lists[ParamProductCategory]...)
	spec.Tags = NewSet(spec.lists[ParamTags]...)
	spec.PaymentMethods = NewSet(spec.lists[ParamPaymentMethod]...)

	if f, ok := parseNumber(params[ParamAgeMin]); ok {
		n := clampInt(math.Ceil(f))
		spec.AgeMin = &n
	}
	if f, ok := parseNumber(params[ParamAgeMax]); ok {
		n := clampInt(math.Floor(f))
		spec.AgeMax = &n
	}
	if spec.AgeMin != nil && spec.AgeMax != nil && *spec.AgeMin > *spec.AgeMax {
		return QuerySpec{}, &InvalidRangeError{
			Field:   "age",
			Message: fmt.Sprintf("invalid age range: min %d is greater than max %d", *spec.AgeMin, *spec.AgeMax),
		}
	}

	spec.DateFrom = parseDate(params[ParamDateFrom])
	spec.DateTo = parseDate(params[ParamDateTo])
	if spec.DateFrom != nil && spec.DateTo != nil && spec.DateFrom.After(*spec.DateTo) {
		return QuerySpec{}, &InvalidRangeError{
			Field: "date",
			Message: fmt.Sprintf("invalid date range: from %s is after to %s",
				spec.DateFrom.Format(DateLayout), spec.DateTo.Format(DateLayout)),
		}
	}

	sortBy := params[ParamSortBy]
	spec.SortBy = ParseSortKey(sortBy)
	spec.sortByRaw = sortBy
	switch params[ParamSortDir] {
	case "asc":
		spec.SortDir = Asc
	case "desc":
		spec.SortDir = Desc
	case "":
		if sortBy == "customerName" {
			spec.SortDir = Asc
		}
	}

	return spec, nil
}

// SortByName is the sortBy value echoed back: the requested one, or the
// key's name when none was given.
func (q QuerySpec) SortByName() string {
	if q.sortByRaw != "" {
		return q.sortByRaw
	}
	return q.SortBy.String()
}

// Filters returns the effective filters for echoing in a PageResult.
func (q QuerySpec) Filters() Filters {
	list := func(name string) []string {
		if v := q.lists[name]; v != nil {
			return v
		}
		return []string{}
	}
	return Filters{
		Regions:           list(ParamRegion),
		Genders:           list(ParamGender),
		ProductCategories: list(ParamProductCategory),
		Tags:              list(ParamTags),
		PaymentMethods:    list(ParamPaymentMethod),
		AgeMin:            q.AgeMin,
		AgeMax:            q.AgeMax,
		DateFrom:          formatDate(q.DateFrom),
		DateTo:            formatDate(q.DateTo),
		Search:            q.Search,
	}
}

func parseList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// intOrDefault parses v as a number; absent, non-finite and zero values
// yield def.
func intOrDefault(v string, def int) int {
	f, ok := parseNumber(v)
	if !ok {
		return def
	}
	if n := clampInt(f); n != 0 {
		return n
	}
	return def
}

// clampInt truncates f into [-maxFieldInt, maxFieldInt].
func clampInt(f float64) int {
	return int(max(-maxFieldInt, min(f, maxFieldInt)))
}
