package workers

import (
	"os"
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	// Save and restore original environment
	originalEnv := os.Getenv("THUMBNAIL_WORKERS")
	defer func() {
		if originalEnv != "" {
			os.Setenv("THUMBNAIL_WORKERS", originalEnv)
		} else {
			os.Unsetenv("THUMBNAIL_WORKERS")
		}
	}()

	os.Unsetenv("THUMBNAIL_WORKERS")

	availableCPU := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		minExpect  int
		maxExpect  int
	}{
		{
			name:       "CPU-bound (1.0x multiplier)",
			multiplier: 1.0,
			limit:      0,
			minExpect:  1,
			maxExpect:  availableCPU,
		},
		{
			name:       "I/O-bound (2.0x multiplier)",
			multiplier: 2.0,
			limit:      0,
			minExpect:  1,
			maxExpect:  availableCPU * 2,
		},
		{
			name:       "Limit lower than calculated",
			multiplier: 2.0,
			limit:      1,
			minExpect:  1,
			maxExpect:  1,
		},
		{
			name:       "Fractional multiplier never drops below one",
			multiplier: 0.1,
			limit:      0,
			minExpect:  1,
			maxExpect:  availableCPU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.multiplier, tt.limit)
			if got < tt.minExpect || got > tt.maxExpect {
				t.Errorf("Count(%v, %d) = %d, want between %d and %d",
					tt.multiplier, tt.limit, got, tt.minExpect, tt.maxExpect)
			}
		})
	}
}

func TestCountEnvOverride(t *testing.T) {
	originalEnv := os.Getenv("THUMBNAIL_WORKERS")
	defer func() {
		if originalEnv != "" {
			os.Setenv("THUMBNAIL_WORKERS", originalEnv)
		} else {
			os.Unsetenv("THUMBNAIL_WORKERS")
		}
	}()

	os.Setenv("THUMBNAIL_WORKERS", "3")
	if got := Count(1.0, 0); got != 3 {
		t.Errorf("Count with override = %d, want 3", got)
	}

	// Override is still capped by the limit
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Count with override and limit = %d, want 2", got)
	}

	// Invalid override falls back to calculation
	os.Setenv("THUMBNAIL_WORKERS", "not-a-number")
	if got := Count(1.0, 0); got < 1 {
		t.Errorf("Count with invalid override = %d, want >= 1", got)
	}
}

func TestHelpers(t *testing.T) {
	os.Unsetenv("THUMBNAIL_WORKERS")

	if got := ForCPU(4); got < 1 || got > 4 {
		t.Errorf("ForCPU(4) = %d, want 1..4", got)
	}
	if got := ForIO(8); got < 1 || got > 8 {
		t.Errorf("ForIO(8) = %d, want 1..8", got)
	}
	if got := ForMixed(6); got < 1 || got > 6 {
		t.Errorf("ForMixed(6) = %d, want 1..6", got)
	}
}
