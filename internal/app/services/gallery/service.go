package gallery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
)

// Uploader stores one file and returns its public URL. Image normalization
// (resize, re-encode) is the uploader's concern; a compressing implementation
// can be slotted in without touching the pipeline.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// uploadWorkers bounds concurrent transfers regardless of batch size.
const uploadWorkers = 4

type ItemStatus string

const (
	StatusPending   ItemStatus = "pending"
	StatusUploading ItemStatus = "uploading"
	StatusDone      ItemStatus = "done"
	StatusError     ItemStatus = "error"
)

// UploadFile is one selected local file offered to the bulk pipeline.
type UploadFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
	Alt         string
	Category    string
}

// UploadResult tracks one file through the pipeline.
type UploadResult struct {
	Name   string
	Status ItemStatus
	URL    string
	Err    error
}

// ProgressFunc observes per-item status transitions. Called sequentially per
// item but concurrently across items.
type ProgressFunc func(index int, result UploadResult)

type Service struct {
	Items    gallery.Repository
	Uploader Uploader
	Logger   *slog.Logger
}

func NewService(items gallery.Repository, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{Items: items, Uploader: uploader, Logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*gallery.Item, error) {
	return s.Items.List(ctx)
}

func (s *Service) Add(ctx context.Context, item *gallery.Item) (*gallery.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.Items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("gallery: save item: %w", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, item *gallery.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.Items.Save(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Items.Delete(ctx, id)
}

func (s *Service) Reorder(ctx context.Context, ids []string) error {
	return s.Items.Reorder(ctx, ids)
}

// UploadOne stores a single file and returns its public URL without touching
// the gallery store; the admin commits the item separately.
func (s *Service) UploadOne(ctx context.Context, file UploadFile) (string, error) {
	return s.Uploader.Upload(ctx, objectKey(file.Name), file.Reader, file.ContentType)
}

// BulkUpload pushes every file through a fixed pool of workers. Each worker
// pulls the next pending item and runs one upload to completion; items fail
// independently and are never retried here. Only done items are committed to
// the gallery store.
func (s *Service) BulkUpload(ctx context.Context, files []UploadFile, progress ProgressFunc) ([]UploadResult, error) {
	results := make([]UploadResult, len(files))
	for i, f := range files {
		results[i] = UploadResult{Name: f.Name, Status: StatusPending}
		if progress != nil {
			progress(i, results[i])
		}
	}

	var mu sync.Mutex
	report := func(i int, r UploadResult) {
		mu.Lock()
		results[i] = r
		mu.Unlock()
		if progress != nil {
			progress(i, r)
		}
	}

	queue := make(chan int)
	var wg sync.WaitGroup
	workers := uploadWorkers
	if len(files) < workers {
		workers = len(files)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				s.uploadItem(ctx, files[i], i, report)
			}
		}()
	}
	for i := range files {
		queue <- i
	}
	close(queue)
	wg.Wait()

	var firstErr error
	for i, r := range results {
		if r.Status != StatusDone {
			if firstErr == nil && r.Err != nil {
				firstErr = r.Err
			}
			continue
		}
		item := &gallery.Item{
			ID:       uuid.NewString(),
			Src:      r.URL,
			Alt:      altFor(files[i]),
			Category: files[i].Category,
		}
		if err := s.Items.Save(ctx, item); err != nil {
			report(i, UploadResult{Name: r.Name, Status: StatusError, Err: err})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return results, firstErr
}

func (s *Service) uploadItem(ctx context.Context, file UploadFile, i int, report func(int, UploadResult)) {
	report(i, UploadResult{Name: file.Name, Status: StatusUploading})
	url, err := s.Uploader.Upload(ctx, objectKey(file.Name), file.Reader, file.ContentType)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("gallery upload failed", "file", file.Name, "error", err)
		}
		report(i, UploadResult{Name: file.Name, Status: StatusError, Err: err})
		return
	}
	report(i, UploadResult{Name: file.Name, Status: StatusDone, URL: url})
}

func altFor(f UploadFile) string {
	if strings.TrimSpace(f.Alt) != "" {
		return f.Alt
	}
	name := path.Base(f.Name)
	return strings.TrimSuffix(name, path.Ext(name))
}

func objectKey(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		ext = ".webp"
	}
	return fmt.Sprintf("gallery/%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:6], ext)
}
