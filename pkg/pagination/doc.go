// Package pagination walks paginated World Bank API responses into one
// aggregated result set.
//
// The API returns each page as a two-element array: a pagination envelope
// (current page, total pages, optionally a lastupdated date) followed by the
// records. Pages are fetched strictly in sequence, since each request's
// page parameter depends on the previous envelope.
//
// Example usage:
//
//	fetcher := pagination.NewFetcher(apiClient)
//	results, err := fetcher.FetchAll(ctx, baseURL+"/countries", nil, true)
//
// Anomalous responses are classified explicitly: an envelope without
// page/pages but with a message payload becomes an *APIError carrying the
// remote-reported id, key, and value; anything else becomes an
// *UnexpectedResponseError with a dump of the offending response.
package pagination
