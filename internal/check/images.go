package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// ImageMetadataCheck scans images in the output tree for EXIF metadata
// that should not ship on a public blog: GPS coordinates, device serial
// numbers, and author/copyright identity tags. Photos exported straight
// from a phone carry all three.
type ImageMetadataCheck struct {
	// pattern selects image files under the output dir, doublestar syntax.
	pattern string
}

// NewImageMetadataCheck creates the image metadata check.
func NewImageMetadataCheck(pattern string) *ImageMetadataCheck {
	return &ImageMetadataCheck{pattern: pattern}
}

// Name returns the check name.
func (c *ImageMetadataCheck) Name() string {
	return "images"
}

// Run scans every matching image. Images without EXIF data are the happy
// path and produce nothing.
func (c *ImageMetadataCheck) Run(ctx context.Context, s *site.Site, report *model.AuditReport) error {
	matches, err := doublestar.Glob(os.DirFS(s.OutputDir), c.pattern)
	if err != nil {
		return fmt.Errorf("invalid image pattern %q: %w", c.pattern, err)
	}

	leaks := 0
	for _, rel := range matches {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := os.ReadFile(filepath.Join(s.OutputDir, rel)) //nolint:gosec // Paths come from globbing the configured output tree
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", rel, err)
		}

		findings := scanImage(rel, data)
		leaks += len(findings)
		for _, f := range findings {
			report.AddFinding(f)
		}
	}

	if leaks > 0 {
		return fmt.Errorf("%d image metadata leak(s) found", leaks)
	}
	return nil
}

// scanImage extracts EXIF entries from one image and flags the sensitive
// tags. Images without an EXIF segment are silently fine.
func scanImage(rel string, data []byte) []model.Finding {
	findings := make([]model.Finding, 0)

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return findings
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return findings
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			findings = append(findings, model.Finding{
				Check:    "images",
				Title:    "GPS coordinates in image metadata",
				Value:    entry.TagName,
				Location: rel,
				Severity: model.SeverityCritical,
			})
		case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
			findings = append(findings, model.Finding{
				Check:    "images",
				Title:    "Device serial number in image metadata",
				Value:    entry.TagName + ": " + entry.Formatted,
				Location: rel,
				Severity: model.SeverityHigh,
			})
		case "Artist", "Author", "Copyright", "XPAuthor":
			findings = append(findings, model.Finding{
				Check:    "images",
				Title:    "Author information in image metadata",
				Value:    entry.TagName + ": " + entry.Formatted,
				Location: rel,
				Severity: model.SeverityHigh,
			})
		}
	}

	return findings
}
