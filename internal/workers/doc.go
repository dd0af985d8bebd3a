/*
Package workers provides utilities for determining worker pool sizes in
containerized environments.

When running in a container, the number of available CPUs may be limited by
cgroup constraints. Go 1.19+ sets GOMAXPROCS from the container CPU limit,
while runtime.NumCPU() still reports the host machine's CPU count. The
helpers here size pools from GOMAXPROCS so thumbnail generation respects
container resource limits.

Basic usage:

	// CPU-intensive work (image resize/encode), at most 8 workers
	n := workers.ForCPU(8)

	// I/O-bound work (filesystem scans), at most 16 workers
	n := workers.ForIO(16)

	// Mixed work (read file, resize, write result)
	n := workers.ForMixed(12)

All functions respect the THUMBNAIL_WORKERS environment variable, allowing
operators to override the automatic calculation.
*/
package workers
