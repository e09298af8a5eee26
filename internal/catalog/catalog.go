// Package catalog serves program definitions to the tracker from a
// freecache-backed read-through cache over the program repository.
package catalog

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	"go.mongodb.org/mongo-driver/bson"
)

// Catalog is read-only: programs are written through the repository and
// Invalidate is called afterwards. Missing programs are never cached so a
// program created on another instance is visible immediately.
type Catalog struct {
	programs repository.ProgramRepository
	cache    *freecache.Cache // nil disables caching
	ttl      time.Duration
	media    storage.FileStorage // nil leaves ImageURL untouched
	metrics  *metrics.Manager
	log      *logger.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCache enables caching of up to sizeBytes of encoded programs, each for ttl.
func WithCache(sizeBytes int, ttl time.Duration) Option {
	return func(c *Catalog) {
		if sizeBytes > 0 {
			c.cache = freecache.NewCache(sizeBytes)
			c.ttl = ttl
		}
	}
}

// WithMedia makes Get hydrate ImageURL with a presigned download URL.
func WithMedia(media storage.FileStorage) Option {
	return func(c *Catalog) { c.media = media }
}

func New(programs repository.ProgramRepository, m *metrics.Manager, log *logger.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		programs: programs,
		metrics:  m,
		log:      log.With("component", "ProgramCatalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists reports whether the program is in the catalog.
func (c *Catalog) Exists(ctx context.Context, programID string) (bool, error) {
	_, err := c.load(ctx, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the program or repository.ErrNotFound.
func (c *Catalog) Get(ctx context.Context, programID string) (*domain.Program, error) {
	program, err := c.load(ctx, programID)
	if err != nil {
		return nil, err
	}
	c.hydrate(ctx, program)
	return program, nil
}

// Invalidate drops a cached program after it changed.
func (c *Catalog) Invalidate(programID string) {
	if c.cache != nil {
		c.cache.Del([]byte(programID))
	}
}

func (c *Catalog) load(ctx context.Context, programID string) (*domain.Program, error) {
	if c.cache != nil {
		if raw, err := c.cache.Get([]byte(programID)); err == nil {
			var program domain.Program
			err := bson.Unmarshal(raw, &program)
			if err == nil {
				c.metrics.CounterCatalogCache.WithLabelValues("hit").Inc()
				return &program, nil
			}
			c.log.Warn("Dropping undecodable catalog entry", "programId", programID, "error", err)
			c.cache.Del([]byte(programID))
		}
		c.metrics.CounterCatalogCache.WithLabelValues("miss").Inc()
	}

	program, err := c.programs.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		raw, err := bson.Marshal(program)
		if err == nil {
			err = c.cache.Set([]byte(programID), raw, int(c.ttl.Seconds()))
		}
		if err != nil {
			c.log.Warn("Failed to cache program", "programId", programID, "error", err)
		}
	}
	return program, nil
}

// hydrate replaces ImageURL with a presigned URL for a stored cover. Failures
// leave the program without a URL rather than failing the read.
func (c *Catalog) hydrate(ctx context.Context, program *domain.Program) {
	if c.media == nil || program.ImageKey == "" {
		return
	}
	url, err := c.media.GeneratePresignedDownloadURL(ctx, program.ImageKey, 0)
	if err != nil {
		c.log.Warn("Failed to presign cover image", "programId", program.ID, "error", err)
		return
	}
	program.ImageURL = url
}
