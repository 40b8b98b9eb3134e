package sales

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildOptions collects the distinct non-empty values of each categorical
// field across the dataset, each list ordered by collation.
func BuildOptions(dataset []Sale) FilterOptions {
	regions := map[string]struct{}{}
	genders := map[string]struct{}{}
	categories := map[string]struct{}{}
	tags := map[string]struct{}{}
	payments := map[string]struct{}{}

	add := func(set map[string]struct{}, v string) {
		if v != "" {
			set[v] = struct{}{}
		}
	}

	for _, s := range dataset {
		add(regions, s.CustomerRegion)
		add(genders, s.Gender)
		add(categories, s.ProductCategory)
		add(payments, s.PaymentMethod)
		for _, t := range s.Tags {
			add(tags, t)
		}
	}

	// A Collator is not safe for concurrent use, so each build gets its own.
	col := collate.New(language.Und)
	sorted := func(set map[string]struct{}) []string {
		out := make([]string, 0, len(set))
		for v := range set {
			out = append(out, v)
		}
		slices.SortFunc(out, func(a, b string) int {
			if c := col.CompareString(a, b); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
		return out
	}

	return FilterOptions{
		Regions:           sorted(regions),
		Genders:           sorted(genders),
		ProductCategories: sorted(categories),
		Tags:              sorted(tags),
		PaymentMethods:    sorted(payments),
	}
}
