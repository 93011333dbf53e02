package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cppla/civicreport/models"
)

func setupRepository(t *testing.T) *SubmissionRepositoryImpl {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "submissions.db")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Submission{}); err != nil {
		t.Fatalf("auto migrate submissions: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSubmissionRepository(db)
}

func TestCreateReturnsStoredRow(t *testing.T) {
	repo := setupRepository(t)
	contact := "me@example.com"

	saved, err := repo.Create(context.Background(), &models.Submission{
		Title:       "Flooded underpass",
		Description: "Water up to the knees",
		MediaURLs:   []string{"/uploads/a-1.jpg", "/uploads/b-2.mp4"},
		MediaTypes:  []string{"image/jpeg", "video/mp4"},
		Location:    &models.Location{Lat: 48.1, Lng: 11.5, PlaceName: "Lat: 48.1, Lng: 11.5"},
		Tags:        []string{"flood"},
		ContactInfo: &contact,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(saved.ID) != 36 {
		t.Fatalf("id = %q, want uuid", saved.ID)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
	if saved.Status != models.StatusNew || saved.Source != models.DefaultSource {
		t.Fatalf("status/source = %q/%q", saved.Status, saved.Source)
	}
	if len(saved.MediaURLs) != 2 || saved.MediaURLs[1] != "/uploads/b-2.mp4" || saved.MediaTypes[1] != "video/mp4" {
		t.Fatalf("media = %v %v", saved.MediaURLs, saved.MediaTypes)
	}
	if saved.Location == nil || saved.Location.Lng != 11.5 || saved.Location.PlaceName == "" {
		t.Fatalf("location = %+v", saved.Location)
	}
	if saved.ContactInfo == nil || *saved.ContactInfo != contact {
		t.Fatalf("contact_info = %v", saved.ContactInfo)
	}
	if saved.VoiceTranscript != nil {
		t.Fatalf("voice_transcript = %v, want nil", saved.VoiceTranscript)
	}
}

func TestCreateWithoutLocation(t *testing.T) {
	repo := setupRepository(t)

	saved, err := repo.Create(context.Background(), &models.Submission{
		Title:       "Noise",
		Description: "Construction at night",
		MediaURLs:   []string{},
		MediaTypes:  []string{},
		Tags:        []string{},
		Anonymity:   true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.Location != nil || saved.ContactInfo != nil {
		t.Fatalf("location/contact = %+v/%v, want nil", saved.Location, saved.ContactInfo)
	}
	if !saved.Anonymity || len(saved.MediaURLs) != 0 {
		t.Fatalf("anonymity/media = %v/%v", saved.Anonymity, saved.MediaURLs)
	}
}

func TestListOrdersNewestFirstAndFilters(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := []struct {
		id     string
		status string
		age    time.Duration
	}{
		{"00000000-0000-0000-0000-000000000001", models.StatusNew, 3 * time.Hour},
		{"00000000-0000-0000-0000-000000000002", models.StatusVerified, 2 * time.Hour},
		{"00000000-0000-0000-0000-000000000003", models.StatusNew, time.Hour},
	}
	for _, r := range rows {
		_, err := repo.Create(ctx, &models.Submission{
			ID:          r.id,
			Title:       "t",
			Description: "d",
			Status:      r.status,
			CreatedAt:   base.Add(-r.age),
		})
		if err != nil {
			t.Fatalf("Create(%s) error = %v", r.id, err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantOrder := []string{rows[2].id, rows[1].id, rows[0].id}
	if len(all) != len(wantOrder) {
		t.Fatalf("List() returned %d rows", len(all))
	}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Fatalf("List()[%d] = %s, want %s", i, all[i].ID, id)
		}
	}

	fresh, err := repo.List(ctx, models.StatusNew)
	if err != nil {
		t.Fatalf("List(new) error = %v", err)
	}
	if len(fresh) != 2 || fresh[0].ID != rows[2].id || fresh[1].ID != rows[0].id {
		t.Fatalf("List(new) = %+v", fresh)
	}

	none, err := repo.List(ctx, models.StatusRejected)
	if err != nil || len(none) != 0 {
		t.Fatalf("List(rejected) = %v, %v", none, err)
	}
}
