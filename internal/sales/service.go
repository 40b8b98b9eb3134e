package sales

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service answers sales queries against the stored snapshot.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// Stats describes the loaded dataset.
type Stats struct {
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loadedAt"`
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Load normalizes raw records and publishes them as the current dataset.
func (s *Service) Load(raw []map[string]string) (*Snapshot, error) {
	snap := NewSnapshot(raw)
	if err := s.storage.Store(snap); err != nil {
		s.logger.Error("failed to store sales snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to store sales snapshot: %w", err)
	}

	s.logger.Info("sales dataset loaded",
		zap.Int("records", len(snap.Sales)),
		zap.Int("regions", len(snap.Options.Regions)),
		zap.Int("tags", len(snap.Options.Tags)),
	)
	return snap, nil
}

// Query parses params and returns the requested page of matching sales.
// Invalid ranges are reported as *InvalidRangeError.
func (s *Service) Query(params map[string]string) (*PageResult, error) {
	spec, err := Parse(params)
	if err != nil {
		var rangeErr *InvalidRangeError
		if errors.As(err, &rangeErr) {
			s.logger.Debug("rejected query range", zap.String("field", rangeErr.Field), zap.Error(err))
		}
		return nil, err
	}

	snap, err := s.storage.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales snapshot: %w", err)
	}

	return Run(snap.Sales, spec), nil
}

// FilterOptions returns the distinct values of each categorical filter.
func (s *Service) FilterOptions() (FilterOptions, error) {
	snap, err := s.storage.Snapshot()
	if err != nil {
		return FilterOptions{}, fmt.Errorf("failed to read sales snapshot: %w", err)
	}
	return snap.Options, nil
}

// Stats reports the size and load time of the current dataset.
func (s *Service) Stats() (Stats, error) {
	snap, err := s.storage.Snapshot()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read sales snapshot: %w", err)
	}
	return Stats{Records: len(snap.Sales), LoadedAt: snap.LoadedAt}, nil
}

// Run evaluates spec over dataset: filter, sort, then paginate.
func Run(dataset []Sale, spec QuerySpec) *PageResult {
	filtered := Filter(dataset, spec)
	sorted := Sort(filtered, spec.SortBy, spec.SortDir)
	page := Paginate(sorted, spec.Page, spec.PageSize)

	views := make([]SaleView, len(page.Rows))
	for i, row := range page.Rows {
		views[i] = row.View()
	}

	return &PageResult{
		Data:       views,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
		SortBy:     spec.SortByName(),
		SortDir:    spec.SortDir.String(),
		Filters:    spec.Filters(),
	}
}
