package domain

import "time"

// Follow is a subscription of UserID to the recipes of AuthorID.
type Follow struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_follow_user_author;check:chk_follow_not_self,user_id <> author_id"`
	AuthorID  int64     `json:"author_id" gorm:"not null;index;uniqueIndex:idx_follow_user_author"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }
