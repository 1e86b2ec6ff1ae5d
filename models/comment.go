package models

import (
	"strings"
	"time"
	"yatube/db"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	PostID    uint64 `gorm:"not null;index"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text;not null"`
}

func (c *Comment) PubDate() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

func CommentCreate(postID, userID uint64, text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrEmptyText
	}
	if _, err := PostByID(postID); err != nil {
		return Comment{}, err
	}
	comment := Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := db.Instance.Create(&comment).Error; err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments).Error
	return
}
