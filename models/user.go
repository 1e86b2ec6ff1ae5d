package models

import (
	"errors"
	"yatube/db"
	"yatube/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique"`
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150)"`
	Password  string `gorm:"type:varchar(128)"`
	PassSalt  string `gorm:"type:varchar(200)"`
}

const saltSize = 60

func UserCreate(username, name, email, plainTextPassword string) (u User, err error) {
	if _, err = UserByUsername(username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	u.Username = username
	u.Name = name
	u.Email = email
	u.SetPassword(plainTextPassword)
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func UserLogin(username, plainTextPassword string) (u User, success bool) {
	result := db.Instance.First(&u, "username = ?", username)
	if result.Error != nil {
		return User{}, false
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, false
	}
	return u, true
}

func UserByUsername(username string) (u User, err error) {
	err = translateNotFound(db.Instance.First(&u, "username = ?", username).Error)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func UserByID(id uint64) (u User, err error) {
	err = translateNotFound(db.Instance.First(&u, id).Error)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// UserDelete removes the user together with all of their posts and comments.
// Posts cannot outlive their author.
func UserDelete(userID uint64) error {
	var posts []Post
	if err := db.Instance.Where("user_id = ?", userID).Find(&posts).Error; err != nil {
		return err
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		postIDs := make([]uint64, 0, len(posts))
		for _, p := range posts {
			postIDs = append(postIDs, p.ID)
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Post{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Stored images are removed only once the rows are gone for good
	for i := range posts {
		posts[i].DeleteImageFiles()
	}
	return nil
}
