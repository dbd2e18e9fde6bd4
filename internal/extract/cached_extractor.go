package extract

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"mcqgen/internal/cache"
	"mcqgen/internal/domain"
	"mcqgen/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTextTTL = 24 * time.Hour

// CachedExtractor memoizes extracted text by content hash. Concurrent uploads
// of the same bytes share one extraction.
type CachedExtractor struct {
	next     domain.TextExtractor
	cache    domain.Cache
	ttl      time.Duration
	maxBytes int64
	sfGroup  singleflight.Group
}

// NewCachedExtractor wraps next. Uploads over maxBytes are rejected before the
// body is read or the cache is consulted; 0 disables the check.
func NewCachedExtractor(next domain.TextExtractor, c domain.Cache, ttl time.Duration, maxBytes int64) (*CachedExtractor, error) {
	if next == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for CachedExtractor")
	}
	if ttl <= 0 {
		ttl = DefaultTextTTL
	}
	return &CachedExtractor{next: next, cache: c, ttl: ttl, maxBytes: maxBytes}, nil
}

// Extract implements domain.TextExtractor.
func (c *CachedExtractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	kind := doc.Kind()
	if kind == domain.DocumentKindUnknown {
		return "", domain.NewUnsupportedFormatError(doc.Filename)
	}
	if err := checkSize(doc, c.maxBytes); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.NewSectionReader(doc.Body, 0, doc.Size))
	if err != nil {
		return "", domain.NewInternalError("failed to read the uploaded file", err)
	}
	sum := sha256.Sum256(data)
	cacheKey := cache.GenerateCacheKey("extract", "text", hex.EncodeToString(sum[:]), string(kind))
	l := logger.Get()

	cached, err := c.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		l.Debug("Extracted text cache hit", zap.String("cache_key", cacheKey))
		return cached, nil
	case errors.Is(err, domain.ErrCacheMiss):
		l.Debug("Extracted text cache miss", zap.String("cache_key", cacheKey))
	default:
		l.Warn("Failed to read extracted text from cache", zap.Error(err), zap.String("cache_key", cacheKey))
	}

	res, err, _ := c.sfGroup.Do(cacheKey, func() (interface{}, error) {
		fresh := doc
		fresh.Body = bytes.NewReader(data)
		fresh.Size = int64(len(data))
		text, extractErr := c.next.Extract(ctx, fresh)
		if extractErr != nil {
			return nil, extractErr
		}
		if setErr := c.cache.Set(ctx, cacheKey, text, c.ttl); setErr != nil {
			l.Warn("Failed to cache extracted text", zap.Error(setErr), zap.String("cache_key", cacheKey))
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}

	text, ok := res.(string)
	if !ok {
		return "", domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight.Do: %T", res), nil)
	}
	return text, nil
}

var _ domain.TextExtractor = (*CachedExtractor)(nil)
