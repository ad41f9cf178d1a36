package stats

import (
	"context"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
)

// APISource adapts the stats API client to the cache's Source interface,
// converting transport types into normalized windows.
type APISource struct {
	Client *api.Client
}

// FetchWindow implements Source.
func (s *APISource) FetchWindow(ctx context.Context, key WindowKey) (*Window, error) {
	raw, err := s.Client.AccessStats(ctx, key.EndTime, key.RangeSec, key.BinSec)
	if err != nil {
		return nil, err
	}

	w := &Window{
		Key:    key,
		Bins:   make([]int64, len(raw.Bins)),
		Counts: make(map[string][]float64, len(raw.CountsByType)),
		Total:  make([]float64, len(raw.Total)),
		Meta: WindowMeta{
			AvailableMin: raw.Meta.AvailableMin.Int64(),
			AvailableMax: raw.Meta.AvailableMax.Int64(),
			Types:        raw.Meta.Types,
		},
	}
	for i, b := range raw.Bins {
		w.Bins[i] = b.Int64()
	}
	for category, counts := range raw.CountsByType {
		values := make([]float64, len(counts))
		for i, n := range counts {
			values[i] = n.Float64()
		}
		w.Counts[category] = values
	}
	for i, n := range raw.Total {
		w.Total[i] = n.Float64()
	}
	return w, nil
}
