package models

import (
	"yatube/config"
	"yatube/db"

	"gorm.io/gorm"
)

// PostFilter narrows a listing down to one group or one author.
// The zero value is the global feed.
type PostFilter struct {
	GroupSlug string
	Username  string
}

// PostPage is one bounded slice of a listing, newest first.
// Pages are 1-based; a page past the end is empty, not an error.
type PostPage struct {
	Number int
	Size   int
	Total  int64
	Posts  []Post
}

// PostsPage resolves the filter and returns the requested page.
// An unknown group slug or username is ErrNotFound, not an empty feed.
func PostsPage(filter PostFilter, page int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	where, err := filter.resolve()
	if err != nil {
		return PostPage{}, err
	}

	result := PostPage{Number: page, Size: config.POSTS_PER_PAGE}
	if err = where(db.Instance.Model(&Post{})).Count(&result.Total).Error; err != nil {
		return PostPage{}, err
	}
	err = where(db.Instance.Preload("User").Preload("Group")).
		Order("created_at DESC, id DESC").
		Limit(result.Size).
		Offset((page - 1) * result.Size).
		Find(&result.Posts).Error
	if err != nil {
		return PostPage{}, err
	}
	return result, nil
}

func (f PostFilter) resolve() (func(*gorm.DB) *gorm.DB, error) {
	conds := func(tx *gorm.DB) *gorm.DB { return tx }
	if f.GroupSlug != "" {
		group, err := GroupBySlug(f.GroupSlug)
		if err != nil {
			return nil, err
		}
		prev := conds
		conds = func(tx *gorm.DB) *gorm.DB { return prev(tx).Where("group_id = ?", group.ID) }
	}
	if f.Username != "" {
		user, err := UserByUsername(f.Username)
		if err != nil {
			return nil, err
		}
		prev := conds
		conds = func(tx *gorm.DB) *gorm.DB { return prev(tx).Where("user_id = ?", user.ID) }
	}
	return conds, nil
}

func (p *PostPage) NumPages() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p *PostPage) HasNext() bool {
	return int64(p.Number*p.Size) < p.Total
}

func (p *PostPage) HasPrev() bool {
	return p.Number > 1
}

func (p *PostPage) NextNumber() int {
	return p.Number + 1
}

func (p *PostPage) PrevNumber() int {
	return p.Number - 1
}
