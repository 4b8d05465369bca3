package pricing

// Stats counts how prices for one region were obtained
type Stats struct {
	Success int
	Failure int
	Cache   int
}

// Total returns the number of API calls (cache hits excluded)
func (s Stats) Total() int {
	return s.Success + s.Failure
}

// SuccessRate returns the API success percentage
func (s Stats) SuccessRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total()) * 100.0
}

// GetAPIStats returns a copy of the per-region pricing statistics
func (e *Estimator) GetAPIStats() map[string]Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	statsCopy := make(map[string]Stats, len(e.stats))
	for region, stats := range e.stats {
		statsCopy[region] = stats
	}
	return statsCopy
}

func (e *Estimator) recordStat(region string, update func(*Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := e.stats[region]
	update(&stats)
	e.stats[region] = stats
}
