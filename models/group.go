package models

import (
	"errors"
	"yatube/db"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Slug        string `gorm:"type:varchar(100);index:uniq_slug,unique"`
	Title       string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
}

func GroupCreate(title, slug, description string) (g Group, err error) {
	if _, err = GroupBySlug(slug); err == nil {
		return Group{}, ErrDuplicateSlug
	} else if !errors.Is(err, ErrNotFound) {
		return Group{}, err
	}
	g.Title = title
	g.Slug = slug
	g.Description = description
	return g, db.Instance.Create(&g).Error
}

func GroupBySlug(slug string) (g Group, err error) {
	err = translateNotFound(db.Instance.First(&g, "slug = ?", slug).Error)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

func GroupByID(id uint64) (g Group, err error) {
	err = translateNotFound(db.Instance.First(&g, id).Error)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

// GroupList returns all groups for the post form's select box
func GroupList() (groups []Group, err error) {
	err = db.Instance.Order("title").Find(&groups).Error
	return
}

// GroupDelete clears the group reference on every post filed under it and
// then removes the group. Posts outlive their group.
func GroupDelete(groupID uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := translateNotFound(tx.First(&Group{}, groupID).Error); err != nil {
			return err
		}
		if err := tx.Model(&Post{}).Where("group_id = ?", groupID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Group{}, groupID).Error
	})
}
