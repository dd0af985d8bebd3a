// Package thumbs implements the thumbnail cache engine: resized image
// variants generated on demand, persisted in the cache directory, and
// reused until the source photo's modification time invalidates them.
//
// Entries are published atomically (write to a temp file, then rename), so
// a concurrent reader sees either the previous complete thumbnail or the
// new one, never a partial file. Duplicate generation for the same key is
// suppressed with a per-key in-flight lock, and total decode/resize work is
// bounded by a worker-count semaphore.
//
// The cache directory is the only writable state; the photos directory is
// read-only input and may be mounted as such. Cached entries are never
// evicted.
package thumbs
