package models

import "time"

type Comment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	PostID        string        `gorm:"index;not null" json:"post_id"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	Content       string        `gorm:"not null" json:"content"`
	Likes         []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"likes"`
	NumberOfLikes int           `gorm:"default:0" json:"number_of_likes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type CommentLike struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CommentID uint   `gorm:"not null;uniqueIndex:idx_comment_like" json:"comment_id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_comment_like" json:"user_id"`
}
