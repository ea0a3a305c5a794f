package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/domain/photo"
	pkgimaging "github.com/churrasapp/churrasapp-api/internal/pkg/imaging"
)

type fakePhotoRepo struct {
	photos map[uuid.UUID]*photo.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[uuid.UUID]*photo.Photo{}}
}

func (f *fakePhotoRepo) add(key string, createdAt time.Time) *photo.Photo {
	p := &photo.Photo{ID: uuid.New(), Key: key, CreatedAt: createdAt}
	f.photos[p.ID] = p
	return p
}

func (f *fakePhotoRepo) Create(ctx context.Context, p *photo.Photo) error {
	f.photos[p.ID] = p
	return nil
}
func (f *fakePhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	return f.photos[id], nil
}
func (f *fakePhotoRepo) GetByKey(ctx context.Context, key string) (*photo.Photo, error) {
	for _, p := range f.photos {
		if p.Key == key {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePhotoRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*photo.Photo, error) {
	return nil, nil
}
func (f *fakePhotoRepo) ListPendingThumbnails(ctx context.Context, limit, maxAttempts int) ([]*photo.Photo, error) {
	var out []*photo.Photo
	for _, p := range f.photos {
		if !p.ThumbKey.Valid && p.ThumbAttempts < maxAttempts {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (f *fakePhotoRepo) SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey, thumbURL string) error {
	p := f.photos[id]
	p.ThumbKey.String, p.ThumbKey.Valid = thumbKey, true
	p.ThumbURL.String, p.ThumbURL.Valid = thumbURL, true
	p.ThumbError.Valid = false
	return nil
}
func (f *fakePhotoRepo) MarkThumbnailFailed(ctx context.Context, id uuid.UUID, msg string) error {
	p := f.photos[id]
	p.ThumbAttempts++
	p.ThumbError.String, p.ThumbError.Valid = msg, true
	return nil
}
func (f *fakePhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.photos, id)
	return nil
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.objects[key])), nil
}
func (f *fakeObjectStore) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = data
	return nil
}
func (f *fakeObjectStore) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRunBatchProcessesPendingPhoto(t *testing.T) {
	repo := newFakePhotoRepo()
	store := newFakeObjectStore()
	processor := pkgimaging.NewProcessor(pkgimaging.DefaultConfig())

	p := repo.add("photos/a.png", time.Now())
	store.objects[p.Key] = pngBytes(t)

	runBatch(context.Background(), repo, store, processor)

	if !p.ThumbKey.Valid {
		t.Fatal("expected thumbnail key to be recorded")
	}
	if p.ThumbKey.String != "photos/a_thumb.png" {
		t.Fatalf("thumb key = %s, want photos/a_thumb.png", p.ThumbKey.String)
	}
	if _, ok := store.objects[p.ThumbKey.String]; !ok {
		t.Fatal("expected thumbnail object in storage")
	}
	if p.ThumbAttempts != 0 {
		t.Fatalf("attempts = %d, want 0 on clean success", p.ThumbAttempts)
	}
}

func TestRunBatchBoundsFailingPhoto(t *testing.T) {
	repo := newFakePhotoRepo()
	store := newFakeObjectStore()
	processor := pkgimaging.NewProcessor(pkgimaging.DefaultConfig())

	corrupt := repo.add("photos/broken.jpg", time.Now())
	store.objects[corrupt.Key] = []byte("not an image")

	for i := 1; i <= maxAttempts; i++ {
		runBatch(context.Background(), repo, store, processor)
		if corrupt.ThumbAttempts != i {
			t.Fatalf("after batch %d attempts = %d, want %d", i, corrupt.ThumbAttempts, i)
		}
	}

	if !corrupt.ThumbError.Valid || corrupt.ThumbError.String == "" {
		t.Fatal("expected the failure reason to be recorded")
	}

	// Exhausted photos drop out of the pending query
	pending, err := repo.ListPendingThumbnails(context.Background(), batchSize, maxAttempts)
	if err != nil {
		t.Fatalf("ListPendingThumbnails failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %d photos, want 0 after attempts are exhausted", len(pending))
	}

	runBatch(context.Background(), repo, store, processor)
	if corrupt.ThumbAttempts != maxAttempts {
		t.Fatalf("attempts = %d, want them capped at %d", corrupt.ThumbAttempts, maxAttempts)
	}
}

func TestRunBatchFailingPhotosDoNotStarveNewerOnes(t *testing.T) {
	repo := newFakePhotoRepo()
	store := newFakeObjectStore()
	processor := pkgimaging.NewProcessor(pkgimaging.DefaultConfig())

	// A full batch of older, permanently failing photos
	base := time.Now().Add(-time.Hour)
	for i := 0; i < batchSize; i++ {
		p := repo.add("photos/bad.jpg", base.Add(time.Duration(i)*time.Minute))
		store.objects[p.Key] = []byte("garbage")
	}

	good := repo.add("photos/good.png", time.Now())
	store.objects[good.Key] = pngBytes(t)

	// Once the bad batch exhausts its attempts the newer photo must get
	// its turn.
	for i := 0; i <= maxAttempts; i++ {
		runBatch(context.Background(), repo, store, processor)
	}

	if !good.ThumbKey.Valid {
		t.Fatal("newer photo never processed: failing photos starved the batch")
	}
}
