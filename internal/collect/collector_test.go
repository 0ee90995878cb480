package collect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvoloshin/personify/internal/cache"
	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/reddit"
)

// fakeClient implements reddit.Client with canned data and call counting
type fakeClient struct {
	meta     model.UserMeta
	posts    []model.TextItem
	comments []model.TextItem

	aboutErr error
	postsErr error

	aboutCalls int
	postCalls  int
}

func (f *fakeClient) About(ctx context.Context, username string) (model.UserMeta, error) {
	f.aboutCalls++
	if f.aboutErr != nil {
		return model.UserMeta{}, f.aboutErr
	}
	return f.meta, nil
}

func (f *fakeClient) Submissions(ctx context.Context, username string, limit int) ([]model.TextItem, error) {
	f.postCalls++
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	if limit < len(f.posts) {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakeClient) Comments(ctx context.Context, username string, limit int) ([]model.TextItem, error) {
	if limit < len(f.comments) {
		return f.comments[:limit], nil
	}
	return f.comments, nil
}

func somePosts(n int) []model.TextItem {
	items := make([]model.TextItem, n)
	for i := range items {
		items[i] = model.TextItem{Kind: model.ItemKindPost, ID: string(rune('a' + i)), Body: "text", Subreddit: "golang"}
	}
	return items
}

func TestCollector_Collect(t *testing.T) {
	client := &fakeClient{
		meta:     model.UserMeta{Username: "spez", CreatedUTC: 1118030400, LinkKarma: 10},
		posts:    somePosts(5),
		comments: []model.TextItem{{Kind: model.ItemKindComment, ID: "c1", Body: "hello"}},
	}

	collector := New(client, nil, 100, 200)
	profile, err := collector.Collect(context.Background(), "spez")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if profile.Meta.Username != "spez" {
		t.Errorf("unexpected meta: %+v", profile.Meta)
	}
	if len(profile.Posts) != 5 || len(profile.Comments) != 1 {
		t.Errorf("unexpected counts: %d posts, %d comments", len(profile.Posts), len(profile.Comments))
	}
	if profile.CollectedAt.IsZero() {
		t.Error("expected CollectedAt to be set")
	}
}

func TestCollector_LimitsApplied(t *testing.T) {
	client := &fakeClient{posts: somePosts(10)}

	collector := New(client, nil, 3, 0)
	profile, err := collector.Collect(context.Background(), "spez")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(profile.Posts) != 3 {
		t.Errorf("expected 3 posts, got %d", len(profile.Posts))
	}
}

func TestCollector_UserNotFoundPropagates(t *testing.T) {
	client := &fakeClient{aboutErr: reddit.ErrUserNotFound}

	collector := New(client, nil, 10, 10)
	_, err := collector.Collect(context.Background(), "gone")
	if !errors.Is(err, reddit.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if client.postCalls != 0 {
		t.Error("expected no listing calls after metadata failure")
	}
}

func TestCollector_CacheHitSkipsAPI(t *testing.T) {
	client := &fakeClient{
		meta:  model.UserMeta{Username: "spez"},
		posts: somePosts(2),
	}
	store := cache.NewMemoryCache(time.Minute)

	collector := New(client, store, 10, 10)
	ctx := context.Background()

	if _, err := collector.Collect(ctx, "spez"); err != nil {
		t.Fatalf("first Collect failed: %v", err)
	}
	if _, err := collector.Collect(ctx, "spez"); err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}

	if client.aboutCalls != 1 {
		t.Errorf("expected 1 API metadata call, got %d", client.aboutCalls)
	}
}

func TestCollector_CaseInsensitiveCacheKey(t *testing.T) {
	client := &fakeClient{meta: model.UserMeta{Username: "spez"}}
	store := cache.NewMemoryCache(time.Minute)

	collector := New(client, store, 10, 10)
	ctx := context.Background()

	if _, err := collector.Collect(ctx, "Spez"); err != nil {
		t.Fatal(err)
	}
	if _, err := collector.Collect(ctx, "spez"); err != nil {
		t.Fatal(err)
	}
	if client.aboutCalls != 1 {
		t.Errorf("expected cache hit across username casing, got %d calls", client.aboutCalls)
	}
}

func TestCollector_ListingErrorPropagates(t *testing.T) {
	client := &fakeClient{postsErr: errors.New("connection reset")}

	collector := New(client, nil, 10, 10)
	_, err := collector.Collect(context.Background(), "spez")
	if err == nil {
		t.Fatal("expected error from listing failure")
	}
}
