package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cppla/civicreport/metrics"
	"github.com/cppla/civicreport/models"
	"github.com/cppla/civicreport/repository"
	"github.com/cppla/civicreport/storage"
)

// Attachment is one uploaded file, in upload order.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmissionInput carries the raw form fields of a report.
type SubmissionInput struct {
	Title       string
	Description string
	Tags        string
	Anonymity   bool
	ContactInfo string
	Source      string
	Location    string
	Files       []Attachment
}

// SubmissionService validates a report, stores its media and inserts the row.
type SubmissionService struct {
	repo           repository.SubmissionRepository
	sink           storage.Sink
	cache          ListCache
	log            *zap.Logger
	cleanupOrphans bool
}

// NewSubmissionService wires the service. cache may be nil. With cleanupOrphans set,
// media stored for a request that then fails is removed again.
func NewSubmissionService(repo repository.SubmissionRepository, sink storage.Sink, cache ListCache, log *zap.Logger, cleanupOrphans bool) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		repo:           repo,
		sink:           sink,
		cache:          cache,
		log:            log,
		cleanupOrphans: cleanupOrphans,
	}
}

// Submit runs the whole submission flow. Classified failures are *SubmitError;
// anything else is unexpected.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*models.Submission, error) {
	// Text is kept as typed; templates escape it on output.
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, &SubmitError{Kind: KindValidation}
	}

	// Location is checked before any upload on purpose: a malformed location is a
	// 400 even when storage is down, and never leaves objects behind.
	location, err := ParseLocation(in.Location)
	if err != nil {
		return nil, &SubmitError{Kind: KindMalformedLocation, Err: err}
	}

	mediaURLs := make([]string, 0, len(in.Files))
	mediaTypes := make([]string, 0, len(in.Files))
	stored := make([]string, 0, len(in.Files))

	for _, f := range in.Files {
		name := ObjectName(f.Filename)
		mediaTypes = append(mediaTypes, f.ContentType)

		url, err := s.store(ctx, name, f)
		if err != nil {
			metrics.MediaStoredTotal.WithLabelValues(s.sink.Backend(), "error").Inc()
			s.log.Error("store attachment failed",
				zap.String("backend", s.sink.Backend()),
				zap.String("object", name),
				zap.Error(err))
			s.removeOrphans(ctx, stored)
			if s.sink.Backend() == "bucket" {
				return nil, &SubmitError{Kind: KindStorage, Err: err}
			}
			return nil, err
		}
		metrics.MediaStoredTotal.WithLabelValues(s.sink.Backend(), "ok").Inc()
		stored = append(stored, name)
		mediaURLs = append(mediaURLs, url)

		if strings.HasPrefix(f.ContentType, "audio/") {
			// no transcription backend; voice_transcript stays null
			s.log.Debug("audio attachment stored without transcript", zap.String("object", name))
		}
	}

	row := &models.Submission{
		Title:           title,
		Description:     description,
		MediaURLs:       mediaURLs,
		MediaTypes:      mediaTypes,
		VoiceTranscript: nil,
		Location:        location,
		Tags:            ParseTags(in.Tags),
		Anonymity:       in.Anonymity,
		ContactInfo:     contactFor(in.Anonymity, in.ContactInfo),
		Source:          sourceOrDefault(in.Source),
		Status:          models.StatusNew,
	}

	saved, err := s.repo.Create(ctx, row)
	if err != nil {
		s.log.Error("insert submission failed", zap.Error(err), zap.Int("media", len(stored)))
		s.removeOrphans(ctx, stored)
		return nil, &SubmitError{Kind: KindPersistence, Err: err}
	}

	if s.cache != nil {
		s.cache.InvalidateByPrefix(ctx, listCachePrefix)
	}
	s.log.Info("submission created",
		zap.String("id", saved.ID),
		zap.Int("media", len(saved.MediaURLs)),
		zap.Bool("anonymous", saved.Anonymity))
	return saved, nil
}

func (s *SubmissionService) store(ctx context.Context, name string, f Attachment) (string, error) {
	if f.Open == nil {
		return "", fmt.Errorf("attachment %q has no content", f.Filename)
	}
	r, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open attachment %q: %w", f.Filename, err)
	}
	defer r.Close()
	return s.sink.Put(ctx, name, f.ContentType, r, f.Size)
}

// removeOrphans deletes already stored objects when compensation is enabled. Best effort.
func (s *SubmissionService) removeOrphans(ctx context.Context, names []string) {
	if !s.cleanupOrphans {
		return
	}
	for _, name := range names {
		if err := s.sink.Remove(context.WithoutCancel(ctx), name); err != nil {
			s.log.Warn("remove orphaned media failed", zap.String("object", name), zap.Error(err))
		}
	}
}

// ParseTags splits a comma separated list, trimming entries and dropping empty ones.
// The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseLocation decodes the location form field. Empty input and JSON null yield nil.
func ParseLocation(raw string) (*models.Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var loc *models.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// ObjectName returns "<uuid>-<base name>" for an uploaded file.
func ObjectName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return uuid.NewString() + "-" + base
}

func contactFor(anonymous bool, raw string) *string {
	if anonymous {
		return nil
	}
	c := strings.TrimSpace(raw)
	if c == "" {
		return nil
	}
	return &c
}

func sourceOrDefault(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return models.DefaultSource
}
