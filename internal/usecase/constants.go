package usecase

import "time"

const (
	// DefaultReportCacheTTL is how long a rendered report stays cached.
	DefaultReportCacheTTL = 5 * time.Minute

	// DefaultWorkers bounds concurrently running report sections.
	DefaultWorkers = 4

	// DefaultSimilarLimit caps similar-transaction results.
	DefaultSimilarLimit = 5

	reportCachePrefix = "report:"
)
