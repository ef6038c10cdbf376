package models

import "time"

type Post struct {
	ID        uint      `gorm:"column:post_id;primaryKey" json:"postId"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"userId"`
	Nickname  string    `gorm:"column:nickname;size:255;not null" json:"nickname"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	Likes     int       `gorm:"column:likes;not null;default:0" json:"likes"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
	User      *User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// PostSummary is a post without its content, used by list endpoints.
type PostSummary struct {
	ID        uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	Nickname  string    `json:"nickname"`
	Title     string    `json:"title"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Post) Summary() PostSummary {
	return PostSummary{
	    ID:        p.ID,
	    UserID:    p.UserID,
	    Nickname:  p.Nickname,
	    Title:     p.Title,
	    Likes:     p.Likes,
	    CreatedAt: p.CreatedAt,
	    UpdatedAt: p.UpdatedAt,
	}
}

func Summaries(posts []Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
	    out = append(out, p.Summary())
	}
	return out
}

// Like is a membership fact; at most one row per (user, post).
type Like struct {
	UserID    uint      `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"column:post_id;primaryKey;autoIncrement:false;index" json:"postId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

type Comment struct {
	ID        uint      `gorm:"column:comment_id;primaryKey" json:"commentId"`
	PostID    uint      `gorm:"column:post_id;not null;index" json:"postId"`
	UserID    uint      `gorm:"column:user_id;not null" json:"userId"`
	Nickname  string    `gorm:"column:nickname;size:255;not null" json:"nickname"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
