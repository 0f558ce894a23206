package mocks

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

// Bucket is an in-memory storage.Client for tests that need real object semantics.
type Bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewBucket returns an empty bucket.
func NewBucket() *Bucket {
	return &Bucket{objects: make(map[string][]byte)}
}

// Object returns a stored object's content.
func (b *Bucket) Object(name string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[name]
	return data, ok
}

// SetObject stores content directly.
func (b *Bucket) SetObject(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[name] = append([]byte(nil), data...)
}

func (b *Bucket) BucketExists(context.Context, string) (bool, error) {
	return true, nil
}

func (b *Bucket) MakeBucket(context.Context, string, minio.MakeBucketOptions) error {
	return nil
}

func (b *Bucket) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	b.SetObject(objectName, data)
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (b *Bucket) GetObject(_ context.Context, _, objectName string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	data, ok := b.Object(objectName)
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Key: objectName}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Bucket) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	b.mu.Lock()
	var names []string
	for name := range b.objects {
		if strings.HasPrefix(name, opts.Prefix) {
			names = append(names, name)
		}
	}
	b.mu.Unlock()
	sort.Strings(names)

	ch := make(chan minio.ObjectInfo, len(names))
	for _, name := range names {
		ch <- minio.ObjectInfo{Key: name}
	}
	close(ch)
	return ch
}
