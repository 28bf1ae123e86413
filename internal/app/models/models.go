package models

import "time"

// Field length constraints enforced at the service layer before any write.
const (
	MaxPostTextLen    = 3000
	MaxCommentTextLen = 1000
	MaxUsernameLen    = 150
)

// User represents a registered author.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Group is a community a post may be published into. The slug is
// referenced by URLs and never changes once created.
type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post is an authored entry. PubDate is set at creation and immutable;
// text, group and image may be overwritten by the author.
type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	PubDate   time.Time `json:"pubDate"`
	AuthorID  int64     `json:"authorId"`
	Author    User      `json:"author"`
	GroupID   *int64    `json:"groupId,omitempty"`
	Group     *Group    `json:"group,omitempty"`
	ImagePath string    `json:"imagePath,omitempty"`
}

// Comment belongs to one post and one author.
type Comment struct {
	ID       int64     `json:"id"`
	PostID   int64     `json:"postId"`
	AuthorID int64     `json:"authorId"`
	Author   User      `json:"author"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// Follow is a directed edge from follower to followed author.
// The (follower, followed) pair is unique and follower never equals followed.
type Follow struct {
	ID         int64     `json:"id"`
	FollowerID int64     `json:"followerId"`
	FollowedID int64     `json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`
}
