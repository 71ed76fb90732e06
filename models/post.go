package models

// Post is a social-feed entry. PhotoURL points at R2/CDN storage (or the
// local uploads dir when R2 is not configured).
type Post struct {
	ID       string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string  `gorm:"index;not null" json:"user_id"`
	Body     string  `gorm:"type:text;not null" json:"body"`
	PhotoURL *string `json:"photo_url,omitempty"`

	LikeCount    int64 `gorm:"default:0" json:"like_count"`
	CommentCount int64 `gorm:"default:0" json:"comment_count"`

	Timestamps
}

type Comment struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string `gorm:"index;not null" json:"post_id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	Body   string `gorm:"type:text;not null" json:"body"`

	Timestamps
}

// PostLike is unique per (post, user): liking twice is a no-op, which keeps
// the author's social-interaction counter honest.
type PostLike struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string `gorm:"uniqueIndex:idx_post_user;not null" json:"post_id"`
	UserID string `gorm:"uniqueIndex:idx_post_user;not null" json:"user_id"`

	Timestamps
}
