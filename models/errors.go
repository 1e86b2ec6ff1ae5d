package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyText         = errors.New("text must not be empty")
	ErrDuplicateSlug     = errors.New("slug is already in use")
	ErrDuplicateUsername = errors.New("username is already in use")
)

// translateNotFound maps gorm's sentinel to the model-level one so that
// callers never have to depend on gorm
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
