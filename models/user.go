package models

import "fmt"

const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User is a registered account. Password only ever holds a bcrypt hash.
type User struct {
	ID             uint   `gorm:"primaryKey;column:id"`
	Email          string `gorm:"column:email;not null;uniqueIndex;size:255"`
	Username       string `gorm:"column:username;not null;uniqueIndex;size:255"`
	Password       string `gorm:"column:password;not null" json:"-"`
	ImageURL       string `gorm:"column:image_url"`
	HeaderImageURL string `gorm:"column:header_image_url"`
	Bio            string `gorm:"column:bio"`
	Location       string `gorm:"column:location"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return fmt.Sprintf("<User #%d: %s, %s>", u.ID, u.Username, u.Email)
}
