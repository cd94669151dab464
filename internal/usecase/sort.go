package usecase

import (
	"sort"

	"StockScan/internal/domain/models"
)

// SortResults orders rows by total score descending, then upside descending
// with unknown upside last. Rows without a score go to the end. Ties keep
// their input order.
func SortResults(results []models.ScanResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return ranksBefore(results[i], results[j])
	})
}

func ranksBefore(a, b models.ScanResult) bool {
	if (a.Score != nil) != (b.Score != nil) {
		return a.Score != nil
	}
	if a.Score == nil {
		return false
	}
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	ua, ub := a.Upside(), b.Upside()
	switch {
	case ua == nil:
		return false
	case ub == nil:
		return true
	default:
		return *ua > *ub
	}
}
