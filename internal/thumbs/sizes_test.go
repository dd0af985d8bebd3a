package thumbs

import "testing"

func TestParseSizeClass(t *testing.T) {
	tests := []struct {
		input string
		want  SizeClass
		ok    bool
	}{
		{"small", SizeSmall, true},
		{"medium", SizeMedium, true},
		{"large", "", false},
		{"Small", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSizeClass(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseSizeClass(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseSizeClass(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMaxDimension(t *testing.T) {
	if got := SizeSmall.MaxDimension(); got != 400 {
		t.Errorf("SizeSmall.MaxDimension() = %d, want 400", got)
	}
	if got := SizeMedium.MaxDimension(); got != 1200 {
		t.Errorf("SizeMedium.MaxDimension() = %d, want 1200", got)
	}
	if got := SizeClass("huge").MaxDimension(); got != 0 {
		t.Errorf("Unknown size MaxDimension() = %d, want 0", got)
	}
}

func TestSizeClasses(t *testing.T) {
	sizes := SizeClasses()
	if len(sizes) != 2 {
		t.Fatalf("Expected 2 size classes, got %d", len(sizes))
	}
	for _, s := range sizes {
		if s.MaxDimension() == 0 {
			t.Errorf("Size class %q has no dimension", s)
		}
	}
}
