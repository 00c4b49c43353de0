package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dronemap/internal/logger"
	"dronemap/internal/model"
	"dronemap/internal/repository"
	"dronemap/internal/storage"
	"dronemap/internal/thumbnail"
)

// Stats summarizes the collection for the map side panel.
type Stats struct {
	Total  int `json:"total"`
	Images int `json:"images"`
	Videos int `json:"videos"`
}

// MediaService defines the use cases for the media collection.
type MediaService interface {
	// Upload validates the payload's kind and coordinates, stores the
	// payload under a collision-free key, generates a thumbnail for
	// images (best effort), persists the record and rolls the payload
	// back if persistence fails. size may be -1 when unknown.
	Upload(ctx context.Context, r io.Reader, originalFilename string, size int64, lat, lon float64, projectID string) (*model.MediaRecord, error)

	// Get returns a single record by its id.
	Get(ctx context.Context, id string) (*model.MediaRecord, error)

	// List returns records matching the query in the requested order.
	List(ctx context.Context, q repository.ListQuery) ([]model.MediaRecord, error)

	// Delete removes a record by id. The payload and thumbnail removal
	// is best-effort; the record removal is not.
	Delete(ctx context.Context, id string) error

	// Stats returns total/image/video counts.
	Stats(ctx context.Context) (Stats, error)
}

type mediaService struct {
	store          storage.Storage
	repo           repository.MediaRepository
	grouping       repository.GroupingRepository
	log            *logger.Logger
	thumbnailMaxPx int
}

// NewMediaService constructs a MediaService. thumbnailMaxPx bounds the
// longest side of generated thumbnails; 0 disables them.
func NewMediaService(store storage.Storage, repo repository.MediaRepository, grouping repository.GroupingRepository, log *logger.Logger, thumbnailMaxPx int) MediaService {
	return &mediaService{
		store:          store,
		repo:           repo,
		grouping:       grouping,
		log:            log,
		thumbnailMaxPx: thumbnailMaxPx,
	}
}

func (s *mediaService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64, lat, lon float64, projectID string) (*model.MediaRecord, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	kind, ok := model.KindFromFilename(originalFilename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(originalFilename))
	}
	if !model.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, lat, lon)
	}

	if projectID == "" {
		projectID = model.DefaultProjectID
	}
	if _, err := s.grouping.FindProject(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProject, projectID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	key := objectKey(now, originalFilename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: mime.TypeByExtension(filepath.Ext(originalFilename)),
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store payload: %w", err)
	}

	thumbKey := ""
	if kind == model.KindImage && s.thumbnailMaxPx > 0 {
		thumbKey = s.generateThumbnail(ctx, objInfo.Key)
	}

	rec := &model.MediaRecord{
		ID:            uuid.New().String(),
		Name:          originalFilename,
		Kind:          kind,
		StoragePath:   objInfo.Key,
		ThumbnailPath: thumbKey,
		Latitude:      lat,
		Longitude:     lon,
		ProjectID:     projectID,
		CreatedAt:     now,
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		// Roll back the payload (and thumbnail) so a failed manifest
		// flush leaves no unreferenced bytes behind.
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			s.log.Warn("rollback payload delete failed", "key", objInfo.Key, "error", delErr)
		}
		if thumbKey != "" {
			if delErr := s.store.Delete(ctx, thumbKey); delErr != nil {
				s.log.Warn("rollback thumbnail delete failed", "key", thumbKey, "error", delErr)
			}
		}
		return nil, fmt.Errorf("persist record: %w", err)
	}

	s.log.Info("media uploaded", "id", stored.ID, "kind", stored.Kind,
		"lat", stored.Latitude, "lon", stored.Longitude, "key", stored.StoragePath)
	return stored, nil
}

// generateThumbnail reads the stored payload back, downscales it and
// stores it next to the original. Failures only cost the thumbnail,
// never the upload.
func (s *mediaService) generateThumbnail(ctx context.Context, payloadKey string) string {
	rc, _, err := s.store.Get(ctx, payloadKey)
	if err != nil {
		s.log.Warn("thumbnail source unreadable", "key", payloadKey, "error", err)
		return ""
	}
	defer rc.Close()

	buf, err := thumbnail.Generate(rc, s.thumbnailMaxPx)
	if err != nil {
		s.log.Warn("thumbnail generation failed", "key", payloadKey, "error", err)
		return ""
	}

	thumbKey := thumbnailKey(payloadKey)
	if _, err := s.store.Put(ctx, thumbKey, &buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: "image/jpeg",
	}); err != nil {
		s.log.Warn("thumbnail store failed", "key", thumbKey, "error", err)
		return ""
	}
	return thumbKey
}

func (s *mediaService) Get(ctx context.Context, id string) (*model.MediaRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *mediaService) List(ctx context.Context, q repository.ListQuery) ([]model.MediaRecord, error) {
	return s.repo.List(ctx, q)
}

func (s *mediaService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Best-effort payload cleanup: a missing file is fine, and an I/O
	// failure here must not leave the record undeletable.
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		s.log.Warn("payload delete failed", "id", id, "key", rec.StoragePath, "error", err)
	}
	if rec.ThumbnailPath != "" {
		if err := s.store.Delete(ctx, rec.ThumbnailPath); err != nil {
			s.log.Warn("thumbnail delete failed", "id", id, "key", rec.ThumbnailPath, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("media deleted", "id", id)
	return nil
}

func (s *mediaService) Stats(ctx context.Context) (Stats, error) {
	records, err := s.repo.List(ctx, repository.ListQuery{})
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(records)}
	for i := range records {
		switch records[i].Kind {
		case model.KindImage:
			st.Images++
		case model.KindVideo:
			st.Videos++
		}
	}
	return st, nil
}

// objectKey builds a collision-free payload key: UTC timestamp, random
// token, then the sanitized original name, so repeated uploads of
// identically named files never overwrite each other.
func objectKey(now time.Time, originalFilename string) string {
	name := fmt.Sprintf("%s_%s_%s",
		now.Format("20060102_150405"),
		uuid.New().String()[:8],
		sanitizeFilename(originalFilename),
	)
	return "media/" + name
}

// thumbnailKey mirrors the payload key under thumbs/ with the
// thumbnail's own extension.
func thumbnailKey(payloadKey string) string {
	base := strings.TrimPrefix(payloadKey, "media/")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "thumbs/" + base + thumbnail.Ext
}

// sanitizeFilename keeps the base name's letters, digits, dots, dashes
// and underscores and replaces everything else.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
