package day

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"daysync/core/merge"
	"daysync/core/storage"
)

const objectExt = ".json"

// RemoteStore keeps day snapshots as JSON objects named <prefix><date>.json.
type RemoteStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewRemoteStore creates a store for the objects under prefix.
func NewRemoteStore(client storage.Client, bucket, prefix string) *RemoteStore {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &RemoteStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *RemoteStore) objectName(date string) string {
	return path.Join(s.prefix, date+objectExt)
}

// Keys returns every date that has an object, in ascending order.
func (s *RemoteStore) Keys(ctx context.Context) ([]string, error) {
	dates, _, err := s.Scan(ctx)
	return dates, err
}

// Scan splits the objects under the prefix into day snapshots and stray objects.
// Stray objects are nested, lack the .json extension, or are not named by a date.
func (s *RemoteStore) Scan(ctx context.Context) (dates, stray []string, err error) {
	names, err := storage.ListNames(ctx, s.client, s.bucket, s.prefix)
	if err != nil {
		return nil, nil, err
	}

	dates = make([]string, 0, len(names))
	for _, name := range names {
		rest := strings.TrimPrefix(name, s.prefix)
		date := strings.TrimSuffix(rest, objectExt)
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, objectExt) || !ValidDate(date) {
			stray = append(stray, name)
			continue
		}
		dates = append(dates, date)
	}
	return dates, stray, nil
}

// Get downloads the snapshot for date. found is false when no object exists.
func (s *RemoteStore) Get(ctx context.Context, date string) (rec merge.DayRecord, found bool, err error) {
	data, found, err := storage.ReadObject(ctx, s.client, s.bucket, s.objectName(date))
	if err != nil || !found {
		return merge.DayRecord{}, false, err
	}

	rec, err = merge.DecodeDayRecord(data)
	if err != nil {
		return merge.DayRecord{}, false, fmt.Errorf("corrupt remote day %s: %w", date, err)
	}
	// The object name owns the date; a payload date is ignored.
	rec.Date = date
	return rec, true, nil
}

// Put uploads the snapshot of rec.Date.
func (s *RemoteStore) Put(ctx context.Context, rec merge.DayRecord) error {
	if !rec.Valid() {
		return ErrInvalidDate
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", rec.Date, err)
	}
	return storage.WriteObject(ctx, s.client, s.bucket, s.objectName(rec.Date), data)
}
