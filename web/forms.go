package web

import (
	"strconv"
	"strings"
	"yatube/models"
)

// Error kinds attached to form fields; templates print them next to the field
const (
	ErrRequired         = "required"
	ErrInvalidReference = "invalid_reference"
	ErrTaken            = "taken"
	ErrLoginFailed      = "login_failed"
)

// FieldErrors maps a field name to an error kind. Empty means valid.
type FieldErrors map[string]string

// PostForm accepts the untrusted {text, group} input. Author and publication
// time are never bindable - they come from the session and the clock.
type PostForm struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

// PostPayload is a validated mutation input for PostCreate/PostEdit
type PostPayload struct {
	Text    string
	GroupID *uint64
}

// Validate returns either a usable payload or the field errors, never both
func (f *PostForm) Validate() (PostPayload, FieldErrors) {
	errs := FieldErrors{}
	payload := PostPayload{Text: f.Text}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = ErrRequired
	}
	// An absent group means "no group" and is fine; a present one must exist
	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 64)
		if err != nil {
			errs["group"] = ErrInvalidReference
		} else if _, err = models.GroupByID(id); err != nil {
			errs["group"] = ErrInvalidReference
		} else {
			payload.GroupID = &id
		}
	}
	if len(errs) > 0 {
		return PostPayload{}, errs
	}
	return payload, nil
}

type SignupForm struct {
	Username string `form:"username"`
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *SignupForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = ErrRequired
	} else if _, err := models.UserByUsername(f.Username); err == nil {
		errs["username"] = ErrTaken
	}
	if f.Password == "" {
		errs["password"] = ErrRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type CommentForm struct {
	Text string `form:"text"`
}

func (f *CommentForm) Validate() FieldErrors {
	if strings.TrimSpace(f.Text) == "" {
		return FieldErrors{"text": ErrRequired}
	}
	return nil
}
