// Package integrations provides the HTTP plumbing shared by repository and
// package-index clients.
//
// # Overview
//
// [Client] wraps a pooled net/http client (hashicorp/go-cleanhttp) and adds:
//   - default headers and per-client authorization ([Authorizer])
//   - status classification into sentinel errors ([ErrNotFound],
//     [ErrConflict], [ErrUnauthorized], [ErrRejected]) and retryable
//     [ErrNetwork] failures
//   - optional response caching for read-only index lookups
//
// Subpackages:
//
//   - [maven]: package-index client that checks declared dependencies exist
//
// Uploads are built on [Client.Put] by the publish package.
//
// [maven]: github.com/matzehuels/pubkit/pkg/integrations/maven
package integrations
