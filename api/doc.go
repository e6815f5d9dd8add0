// Package api provides the HTTP surface of the service.
//
// Routes:
//
//	GET /health
//	GET /api/v1/search?query=&lang=&country=&type=article|rss&include_content=&limit=
//	GET /api/v1/article?url=&include_content=
//
// Every response is a JSON object with a success flag and either data or
// an error message. Failures map to 400 for bad input, 403 when the target
// site blocked the fetch, 404 for a missing article, 408 for a fetch
// timeout and 500 otherwise. Resolution failures and insufficient content
// are reported with 200 and success set to false.
//
// The gin router carries request logging, panic recovery and a per-client
// rate limit on /api/v1; NewHandler wraps it with CORS.
package api
