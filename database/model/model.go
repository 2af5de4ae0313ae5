package model

import (
	"time"
)

// User is a registered author. Users are only ever created; the panel has no
// account update or deletion flow, so identity is permanent.
type User struct {
	Id        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string `json:"username" form:"uname" gorm:"size:80;unique;not null"`
	Email     string `json:"email" form:"email" gorm:"size:120;unique;not null"`
	Password  string `json:"-" gorm:"size:200;not null"` // bcrypt hash, never the raw password
	FirstName string `json:"firstName" form:"fname" gorm:"size:50;not null"`
	LastName  string `json:"lastName" form:"lname" gorm:"size:50;not null"`
}

// Post is a single authored blog entry with an optional image. The author is
// a numeric reference to the creating user, resolved to a username only for
// display.
type Post struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId int       `json:"authorId" gorm:"index;not null"`
	Title    string    `json:"title" form:"title" gorm:"size:160;not null"`
	Content  string    `json:"content" form:"content" gorm:"size:400;not null"`
	Image    string    `json:"image" gorm:"size:200"` // stored filename, empty when no image
	PubDate  time.Time `json:"pubDate" gorm:"not null"`
}
