// Package core contains the business logic of the news resolution and
// extraction pipeline. It does not depend on any web framework.
//
// The core package is organized into several sub-packages:
//
// - domain: Requests, candidates, resolutions, extracted content and responses
// - cascade: Ordered first-success strategy evaluation
// - reader: Candidate discovery from the search feed and the rendered search page
// - resolver: De-indirection of aggregator links to publisher URLs
// - extractor: Structured content extraction from publisher pages
// - orchestrator: Batch and single-article pipelines with caching
// - errors: Typed errors for retry decisions and status mapping
// - interfaces: Contracts for external dependencies (cache, fetcher, logger)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:   myCache,   // implements interfaces.Cache, may be nil
//	    Fetcher: myFetcher, // implements interfaces.Fetcher
//	    Logger:  myLogger,  // implements interfaces.Logger
//	}
//
//	candidates := reader.NewService(deps, reader.Config{FeedBaseURL: base}, flags)
//	links := resolver.NewService(deps, resolver.Config{AggregatorHosts: hosts})
//	content := extractor.NewService(deps, extractor.Config{ImageCap: 8}, flags)
//	pipeline := orchestrator.NewService(deps, candidates, links, content, orchestrator.Config{}, flags)
//
//	resp, err := pipeline.Search(ctx, domain.SearchRequest{Query: "rates"})
package core
