// Package httputil provides HTTP utilities shared by repository and index clients.
//
// # Overview
//
//   - [Retry]: bounded retry with exponential backoff and attempt counting
//   - [Cache]: file-based caching of index lookups
//
// # Retry
//
// [Retry] only retries errors wrapped with [RetryableError]. Clients wrap
// network errors and 408/425/429/5xx responses; everything else (conflicts,
// authorization failures) is returned on the first attempt:
//
//	attempts, err := httputil.Retry(ctx, httputil.DefaultPolicy(), func(attempt int) error {
//	    return upload(ctx)
//	})
//
// The backoff wait is a select on a timer and the context, so a cancelled
// context ends the loop without starting a new attempt.
//
// # Caching
//
// [Cache] stores JSON-encoded values under ~/.cache/pubkit/ with a TTL based
// on file modification time. Publishing never reads from the cache; only
// package index lookups (dependency preflight) do.
//
// The cache can be cleared via `pubkit cache clear` or by deleting the
// cache directory.
package httputil
