package model

import "time"

// ItemKind distinguishes the two kinds of collected text
type ItemKind string

const (
	ItemKindPost    ItemKind = "post"
	ItemKindComment ItemKind = "comment"
)

// TextItem is a single collected post or comment. Immutable once collected.
type TextItem struct {
	Kind       ItemKind `json:"kind"`
	ID         string   `json:"id"`
	URL        string   `json:"url"`                 // Permalink on reddit.com
	Title      string   `json:"title,omitempty"`     // Post title, or parent submission title for comments
	Body       string   `json:"body"`                // Selftext for posts, body for comments
	Subreddit  string   `json:"subreddit"`
	Score      int      `json:"score"`
	CreatedUTC int64    `json:"created_utc"`
}

// UserMeta is the account-level metadata returned by the user endpoint
type UserMeta struct {
	Username     string `json:"username"`
	CreatedUTC   int64  `json:"created_utc"`
	LinkKarma    int    `json:"link_karma"`
	CommentKarma int    `json:"comment_karma"`
	Suspended    bool   `json:"suspended,omitempty"`
}

// Profile bundles everything the collector gathered for one user.
// CollectedAt is the reference time for anything age-derived downstream,
// so identical profiles always produce identical personas.
type Profile struct {
	Meta        UserMeta   `json:"meta"`
	Posts       []TextItem `json:"posts"`
	Comments    []TextItem `json:"comments"`
	CollectedAt time.Time  `json:"collected_at"`
}

// Items returns posts followed by comments, the scan order used by the engine
func (p *Profile) Items() []TextItem {
	items := make([]TextItem, 0, len(p.Posts)+len(p.Comments))
	items = append(items, p.Posts...)
	items = append(items, p.Comments...)
	return items
}
