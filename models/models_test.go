package models

import (
	"fmt"
	"testing"
	"yatube/config"
	"yatube/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:models_%s?mode=memory&cache=shared", t.Name())
	instance, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	db.Instance = instance
	Init()
	config.POSTS_PER_PAGE = 10
}

func mustUser(t *testing.T, username string) User {
	t.Helper()
	user, err := UserCreate(username, username, username+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("UserCreate(%q): %v", username, err)
	}
	return user
}

func mustGroup(t *testing.T, title, slug string) Group {
	t.Helper()
	group, err := GroupCreate(title, slug, "about "+title)
	if err != nil {
		t.Fatalf("GroupCreate(%q): %v", slug, err)
	}
	return group
}

func mustPost(t *testing.T, userID uint64, text string, groupID *uint64) Post {
	t.Helper()
	post, err := PostCreate(userID, text, groupID)
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}
	return post
}
