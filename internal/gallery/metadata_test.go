package gallery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAlbumToml(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, MetaFilename), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", MetaFilename, err)
	}
}

func TestLoadMeta(t *testing.T) {
	dir := t.TempDir()
	writeAlbumToml(t, dir, `
title = "Summer in Lapland"
description = "Hiking above the tree line."
timespan = "June 2024 – September 2024"
`)

	meta, err := loadMeta(dir)
	if err != nil {
		t.Fatalf("loadMeta failed: %v", err)
	}
	if meta.Title != "Summer in Lapland" {
		t.Errorf("Title = %q, want %q", meta.Title, "Summer in Lapland")
	}
	if meta.Description != "Hiking above the tree line." {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Timespan != "June 2024 – September 2024" {
		t.Errorf("Timespan = %q", meta.Timespan)
	}
}

func TestLoadMetaErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "Missing file",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "Unparseable TOML",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeAlbumToml(t, dir, `title = "unterminated`)
				return dir
			},
		},
		{
			name: "Empty title",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeAlbumToml(t, dir, `description = "no title here"`)
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMeta(tt.setup(t))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, ErrInvalidMetadata) {
				t.Errorf("Expected ErrInvalidMetadata, got %v", err)
			}
		})
	}
}

func TestResolveTimespanDeclaredWins(t *testing.T) {
	dir := t.TempDir()
	// A photo with an EXIF date that would derive a different span.
	writeExifFixture(t, dir, "a.jpg", fullExifIFD("2020:01:01 12:00:00"))

	meta := albumMeta{Title: "T", Timespan: "Sometime around the equinox"}
	got := resolveTimespan(meta, dir, []string{"a.jpg"})
	if got != "Sometime around the equinox" {
		t.Errorf("resolveTimespan = %q, want declared value verbatim", got)
	}
}

func TestResolveTimespanDerived(t *testing.T) {
	dir := t.TempDir()
	writeExifFixture(t, dir, "a.jpg", fullExifIFD("2024:03:15 10:00:00"))
	writeExifFixture(t, dir, "b.jpg", fullExifIFD("2024:05:02 17:45:00"))
	// A photo without a date must not disturb the span.
	if err := os.WriteFile(filepath.Join(dir, "c.jpg"), []byte("no exif"), 0o644); err != nil {
		t.Fatalf("writing c.jpg: %v", err)
	}

	got := resolveTimespan(albumMeta{Title: "T"}, dir, []string{"a.jpg", "b.jpg", "c.jpg"})
	want := "March 2024 – May 2024"
	if got != want {
		t.Errorf("resolveTimespan = %q, want %q", got, want)
	}
}

func TestResolveTimespanNoDates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("no exif"), 0o644); err != nil {
		t.Fatalf("writing a.jpg: %v", err)
	}

	if got := resolveTimespan(albumMeta{Title: "T"}, dir, []string{"a.jpg"}); got != "" {
		t.Errorf("Expected empty timespan, got %q", got)
	}
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		name  string
		first time.Time
		last  time.Time
		want  string
	}{
		{
			name:  "Same month",
			first: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, time.March, 28, 0, 0, 0, 0, time.UTC),
			want:  "March 2024",
		},
		{
			name:  "Different months",
			first: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC),
			want:  "June 2024 – September 2024",
		},
		{
			name:  "Across years",
			first: time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			want:  "December 2023 – January 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSpan(tt.first, tt.last); got != tt.want {
				t.Errorf("formatSpan = %q, want %q", got, tt.want)
			}
		})
	}
}
