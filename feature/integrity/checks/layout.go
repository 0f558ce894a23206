package checks

import (
	"context"
	"fmt"
	"slices"

	"daysync/core/storage"
)

// DayScanner lists day snapshot objects and the stray objects next to them.
type DayScanner interface {
	Scan(ctx context.Context) (dates, stray []string, err error)
}

// LayoutReport describes the remote bucket.
type LayoutReport struct {
	Bucket        string   `json:"bucket"`
	BucketExists  bool     `json:"bucket_exists"`
	DayObjects    int      `json:"day_objects"`
	Stray         []string `json:"stray"`
	CatalogExists bool     `json:"catalog_exists"`
}

// OK reports whether the layout needs no attention.
func (r *LayoutReport) OK() bool {
	return r.BucketExists && len(r.Stray) == 0
}

// CheckLayout inspects the bucket. A missing bucket is reported, not returned as an error.
func CheckLayout(ctx context.Context, client storage.Client, bucket string, days DayScanner, catalogObject string) (*LayoutReport, error) {
	report := &LayoutReport{Bucket: bucket, Stray: []string{}}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return report, nil
	}
	report.BucketExists = true

	dates, stray, err := days.Scan(ctx)
	if err != nil {
		return nil, err
	}
	report.DayObjects = len(dates)
	if stray != nil {
		report.Stray = stray
	}

	names, err := storage.ListNames(ctx, client, bucket, catalogObject)
	if err != nil {
		return nil, err
	}
	report.CatalogExists = slices.Contains(names, catalogObject)
	return report, nil
}
