package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cppla/civicreport/models"
)

// mapCache is an in-memory ListCache.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(ctx context.Context, key string, v interface{}) bool {
	b, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

func (c *mapCache) SetJSON(ctx context.Context, key string, v interface{}) {
	b, _ := json.Marshal(v)
	c.data[key] = b
}

func (c *mapCache) InvalidateByPrefix(ctx context.Context, prefix string) {
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
}

func TestListFailsClosed(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("permission denied for table submissions")}
	svc := NewListingService(repo, nil, nil)

	items := svc.List(context.Background(), "")
	if items == nil || len(items) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil slice", items)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{rows: []models.Submission{
		{ID: "1", Status: models.StatusNew, CreatedAt: now},
		{ID: "2", Status: models.StatusVerified, CreatedAt: now},
	}}
	svc := NewListingService(repo, nil, nil)

	if got := svc.List(context.Background(), models.StatusVerified); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("List(verified) = %+v", got)
	}
	if got := svc.List(context.Background(), ""); len(got) != 2 {
		t.Fatalf("List(all) returned %d rows", len(got))
	}
	if got := svc.List(context.Background(), "unknown"); got == nil || len(got) != 0 {
		t.Fatalf("List(unknown) = %#v", got)
	}
}

func TestListUsesCacheUntilSubmit(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	cache := newMapCache()
	lister := NewListingService(repo, cache, nil)
	submitter := NewSubmissionService(repo, &memSink{backend: "local"}, cache, nil, false)

	if got := lister.List(ctx, ""); len(got) != 0 {
		t.Fatalf("initial List() = %d rows", len(got))
	}
	// served from cache: a row written behind the service's back is not visible
	repo.rows = append(repo.rows, models.Submission{ID: "hidden", Status: models.StatusNew})
	if got := lister.List(ctx, ""); len(got) != 0 {
		t.Fatalf("cached List() = %d rows", len(got))
	}

	if _, err := submitter.Submit(ctx, validInput()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := lister.List(ctx, ""); len(got) != 2 {
		t.Fatalf("List() after submit = %d rows, want 2", len(got))
	}
}
