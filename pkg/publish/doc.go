// Package publish uploads an assembled artifact set to one Maven-layout
// repository target.
//
// # Algorithm
//
// For each target [Publisher.Publish]:
//
//  1. Probes the primary artifact's .sha1 sidecar. A matching digest means
//     the coordinate is already published and the call is a no-op success;
//     a different digest is a VERSION_CONFLICT.
//  2. PUTs every file (artifacts, POM and checksum sidecars). Transient
//     failures retry with exponential backoff; files accepted in an earlier
//     attempt are not re-sent.
//  3. Re-fetches every .sha1 sidecar and compares it with the local digest.
//  4. Merges the new version into maven-metadata.xml.
//
// Every failure is reported in the [Result] with a coded error; Publish
// never panics and never affects other targets.
//
// # Cancellation
//
// A request already in flight when ctx is cancelled runs to completion
// (bounded by the HTTP client timeout). No new file, attempt or target
// starts afterwards.
package publish
