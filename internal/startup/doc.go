// Package startup handles configuration loading, directory validation,
// build information, and structured startup logging for the gallery server.
//
// Configuration comes from environment variables (DATA_DIR, CACHE_DIR,
// PORT, ...). The data root must exist and be readable; the cache root is
// created and write-probed, and thumbnails are disabled rather than
// failing startup when it is not writable.
package startup
