package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/churrasapp/churrasapp-api/internal/config"
	"github.com/churrasapp/churrasapp-api/internal/domain/photo"
	"github.com/churrasapp/churrasapp-api/internal/pkg/database"
	pkgimaging "github.com/churrasapp/churrasapp-api/internal/pkg/imaging"
	"github.com/churrasapp/churrasapp-api/internal/pkg/upload"
)

const (
	pollInterval = 10 * time.Second
	batchSize    = 5
	maxAttempts  = 3
)

// objectStore is the slice of the upload service the worker needs
type objectStore interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetPublicURL(key string) string
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().Msg("Starting photo-worker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	uploadSvc := upload.NewService(&upload.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if !uploadSvc.IsConfigured() {
		log.Fatal().Msg("R2 config incomplete, photo-worker cannot run")
	}

	photoRepo := photo.NewRepository(db)
	processor := pkgimaging.NewProcessor(pkgimaging.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis pub/sub shortens latency after a confirm; polling still
	// catches anything the subscription missed.
	wake := make(chan struct{}, 1)
	if rdb != nil {
		go subscribeWakeups(ctx, rdb, wake)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("photo-worker stopped")
			return
		case <-wake:
		case <-ticker.C:
		}

		runBatch(ctx, photoRepo, uploadSvc, processor)
	}
}

// runBatch processes one batch of pending photos. Each failure counts
// against the photo's attempt bound so a corrupt upload cannot occupy the
// batch forever.
func runBatch(ctx context.Context, repo photo.Repository, store objectStore, processor *pkgimaging.Processor) {
	pending, err := repo.ListPendingThumbnails(ctx, batchSize, maxAttempts)
	if err != nil {
		log.Error().Err(err).Msg("DB error while listing pending photos")
		return
	}

	for _, p := range pending {
		if ctx.Err() != nil {
			return
		}

		start := time.Now()
		thumbKey, err := processOne(ctx, store, processor, p)
		if err != nil {
			log.Error().
				Err(err).
				Str("photo_id", p.ID.String()).
				Str("key", p.Key).
				Int("attempt", p.ThumbAttempts+1).
				Msg("Thumbnail processing failed")

			if err2 := repo.MarkThumbnailFailed(ctx, p.ID, err.Error()); err2 != nil {
				log.Error().Err(err2).Str("photo_id", p.ID.String()).Msg("Failed to record processing failure")
			}
			continue
		}

		thumbURL := store.GetPublicURL(thumbKey)
		if err := repo.SetThumbnail(ctx, p.ID, thumbKey, thumbURL); err != nil {
			log.Error().Err(err).Str("photo_id", p.ID.String()).Msg("Failed to record thumbnail")
			continue
		}

		log.Info().
			Str("photo_id", p.ID.String()).
			Str("thumb_key", thumbKey).
			Dur("took", time.Since(start)).
			Msg("Thumbnail ready")
	}
}

func processOne(ctx context.Context, store objectStore, processor *pkgimaging.Processor, p *photo.Photo) (string, error) {
	rc, err := store.GetObject(ctx, p.Key)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer rc.Close()

	result, err := processor.Process(rc)
	if err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	thumbKey := pkgimaging.ThumbKey(p.Key)
	if err := store.PutObject(ctx, thumbKey, result.Thumbnail, result.ContentType); err != nil {
		return "", fmt.Errorf("upload thumbnail: %w", err)
	}

	// Overwrite the original with the web-optimized version
	if err := store.PutObject(ctx, p.Key, result.Original, result.ContentType); err != nil {
		return "", fmt.Errorf("upload optimized original: %w", err)
	}

	return thumbKey, nil
}

func subscribeWakeups(ctx context.Context, rdb *redis.Client, wake chan<- struct{}) {
	sub := rdb.Subscribe(ctx, photo.ProcessChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Channel():
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
