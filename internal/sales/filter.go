package sales

import "strings"

// predicate reports whether a sale passes one filter criterion.
type predicate func(s *Sale) bool

// Filter returns the sales matching every active criterion of spec, in
// their original order.
func Filter(dataset []Sale, spec QuerySpec) []Sale {
	preds := predicates(spec)
	out := make([]Sale, 0, len(dataset))
	for i := range dataset {
		if matchAll(&dataset[i], preds) {
			out = append(out, dataset[i])
		}
	}
	return out
}

func matchAll(s *Sale, preds []predicate) bool {
	for _, p := range preds {
		if !p(s) {
			return false
		}
	}
	return true
}

// predicates builds only the criteria that are active for spec.
func predicates(spec QuerySpec) []predicate {
	var preds []predicate

	if spec.Search != "" {
		needle := strings.ToLower(spec.Search)
		preds = append(preds, func(s *Sale) bool {
			return strings.Contains(strings.ToLower(s.CustomerName), needle) ||
				strings.Contains(strings.ToLower(s.PhoneNumber), needle)
		})
	}

	// Categorical dimensions require an explicit value when restricted.
	categorical := []struct {
		accepted Set
		value    func(s *Sale) string
	}{
		{spec.Regions, func(s *Sale) string { return s.CustomerRegion }},
		{spec.Genders, func(s *Sale) string { return s.Gender }},
		{spec.ProductCategories, func(s *Sale) string { return s.ProductCategory }},
		{spec.PaymentMethods, func(s *Sale) string { return s.PaymentMethod }},
	}
	for _, c := range categorical {
		if len(c.accepted) == 0 {
			continue
		}
		accepted, value := c.accepted, c.value
		preds = append(preds, func(s *Sale) bool {
			v := value(s)
			return v != "" && accepted.Has(v)
		})
	}

	if len(spec.Tags) > 0 {
		accepted := spec.Tags
		preds = append(preds, func(s *Sale) bool {
			for _, t := range s.Tags {
				if accepted.Has(t) {
					return true
				}
			}
			return false
		})
	}

	// Range criteria only constrain sales that carry the field.
	if spec.AgeMin != nil {
		lo := *spec.AgeMin
		preds = append(preds, func(s *Sale) bool { return s.Age == nil || *s.Age >= lo })
	}
	if spec.AgeMax != nil {
		hi := *spec.AgeMax
		preds = append(preds, func(s *Sale) bool { return s.Age == nil || *s.Age <= hi })
	}
	if spec.DateFrom != nil {
		from := *spec.DateFrom
		preds = append(preds, func(s *Sale) bool { return s.Date == nil || !s.Date.Before(from) })
	}
	if spec.DateTo != nil {
		to := *spec.DateTo
		preds = append(preds, func(s *Sale) bool { return s.Date == nil || !s.Date.After(to) })
	}

	return preds
}
