package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/image-service/internal/domain"
	"github.com/spec-kit/image-service/internal/events"
	"github.com/spec-kit/image-service/internal/media"
	"github.com/spec-kit/image-service/internal/repository"
)

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	ImageURL string
	PublicID string
}

// MediaService orchestrates uploads to the media host and the ownership
// metadata kept alongside them.
type MediaService struct {
	store      media.Store
	images     repository.ImageRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewMediaService builds the service. cache may be nil to disable the
// view-URL cache.
func NewMediaService(store media.Store, images repository.ImageRepository, cache *redis.Client, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *MediaService {
	return &MediaService{
		store:      store,
		images:     images,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Upload forwards the file to the media host and records who owns it.
func (s *MediaService) Upload(ctx context.Context, username string, data []byte, contentType string) (*UploadResult, error) {
	publicID, url, err := s.store.Upload(ctx, data, contentType)
	if err != nil {
		s.logger.Error("upload to media host failed", zap.Error(err))
		return nil, err
	}

	image := &domain.Image{
		PublicID: publicID,
		URL:      url,
		Username: username,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}

	s.invalidateViewCache(ctx, username)
	s.publish(ctx, events.EventImageUploaded, username,
		events.ImageUploadedPayload{PublicID: publicID, URL: url})
	s.logger.Info("image uploaded",
		zap.String("username", username),
		zap.String("public_id", publicID))

	return &UploadResult{ImageURL: url, PublicID: publicID}, nil
}

// Delete removes the file from the media host and soft-deletes its
// metadata. The row is kept so ownership history survives.
func (s *MediaService) Delete(ctx context.Context, publicID string) (string, error) {
	result, err := s.store.Delete(ctx, publicID)
	if err != nil {
		s.logger.Error("delete on media host failed",
			zap.String("public_id", publicID), zap.Error(err))
		return "", err
	}

	image, err := s.images.GetByPublicID(ctx, publicID)
	if err != nil {
		return "", err
	}
	if err := s.images.MarkDeleted(ctx, publicID); err != nil {
		return "", err
	}

	s.invalidateViewCache(ctx, image.Username)
	s.publish(ctx, events.EventImageDeleted, image.Username,
		events.ImageDeletedPayload{PublicID: publicID})
	s.logger.Info("image deleted",
		zap.String("username", image.Username),
		zap.String("public_id", publicID))

	return result, nil
}

// View lists the serving URLs of a user's live images.
func (s *MediaService) View(ctx context.Context, username string) ([]string, error) {
	if urls, ok := s.cachedView(ctx, username); ok {
		return urls, nil
	}

	urls, err := s.images.ListURLsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.storeViewCache(ctx, username, urls)
	return urls, nil
}

func viewCacheKey(username string) string {
	return "images:urls:" + username
}

func (s *MediaService) cachedView(ctx context.Context, username string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, viewCacheKey(username)).Bytes()
	if err != nil {
		return nil, false
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil, false
	}
	return urls, true
}

func (s *MediaService) storeViewCache(ctx context.Context, username string, urls []string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, viewCacheKey(username), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("view cache set failed", zap.Error(err))
	}
}

func (s *MediaService) invalidateViewCache(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, viewCacheKey(username)).Err(); err != nil {
		s.logger.Debug("view cache invalidation failed", zap.Error(err))
	}
}

func (s *MediaService) publish(ctx context.Context, eventType events.EventType, username string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Username:  username,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
