package models

import (
	"strings"
	"time"
	"yatube/db"
	"yatube/storage"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:feed_order,priority:1,sort:desc"` // publication time; edits never touch it
	UpdatedAt int64
	UserID    uint64 `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string `gorm:"type:text;not null"`
	ImagePath string `gorm:"type:varchar(300)"`
	ThumbPath string `gorm:"type:varchar(300)"`
}

func (p *Post) PubDate() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// PostCreate stamps the publication time server-side (via gorm's CreatedAt);
// callers cannot supply it
func PostCreate(userID uint64, text string, groupID *uint64) (Post, error) {
	if strings.TrimSpace(text) == "" {
		return Post{}, ErrEmptyText
	}
	if groupID != nil {
		if _, err := GroupByID(*groupID); err != nil {
			return Post{}, err
		}
	}
	post := Post{
		UserID:  userID,
		Text:    text,
		GroupID: groupID,
	}
	if err := db.Instance.Create(&post).Error; err != nil {
		return Post{}, err
	}
	return PostByID(post.ID)
}

// PostEdit overwrites text and group only. Author and publication time are
// immutable under edit. A concurrent author delete makes this ErrNotFound.
func PostEdit(postID uint64, text string, groupID *uint64) (Post, error) {
	if strings.TrimSpace(text) == "" {
		return Post{}, ErrEmptyText
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var post Post
		if err := translateNotFound(tx.First(&post, postID).Error); err != nil {
			return err
		}
		if groupID != nil {
			if err := translateNotFound(tx.First(&Group{}, *groupID).Error); err != nil {
				return err
			}
		}
		return tx.Model(&post).
			Select("text", "group_id").
			Updates(map[string]interface{}{"text": text, "group_id": groupID}).Error
	})
	if err != nil {
		return Post{}, err
	}
	return PostByID(postID)
}

func PostByID(id uint64) (p Post, err error) {
	err = translateNotFound(db.Instance.Preload("User").Preload("Group").First(&p, id).Error)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// SetImage records the stored image paths for the post
func (p *Post) SetImage(imagePath, thumbPath string) error {
	p.ImagePath = imagePath
	p.ThumbPath = thumbPath
	return db.Instance.Model(p).
		Select("image_path", "thumb_path").
		Updates(map[string]interface{}{"image_path": imagePath, "thumb_path": thumbPath}).Error
}

func (p *Post) DeleteImageFiles() {
	if p.ImagePath == "" {
		return
	}
	s := storage.GetDefaultStorage()
	if s == nil {
		return
	}
	_ = s.Delete(p.ImagePath)
	s.DeleteRemoteFile(p.ImagePath)
	if p.ThumbPath != "" {
		_ = s.Delete(p.ThumbPath)
		s.DeleteRemoteFile(p.ThumbPath)
	}
}
