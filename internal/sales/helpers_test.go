package sales

import "time"

func intPtr(n int) *int { return &n }

func datePtr(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func names(rows []Sale) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.CustomerName
	}
	return out
}
