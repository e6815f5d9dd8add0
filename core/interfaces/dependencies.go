// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the pipeline

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache memoises resolutions and extractions; may be nil
	Cache Cache

	// Fetcher is the single network primitive
	Fetcher Fetcher

	// Logger provides structured logging
	Logger Logger
}
