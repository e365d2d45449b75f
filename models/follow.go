package models

// Follow is the directed edge "follower follows followed". The pair is the
// primary key, so an edge can exist at most once.
type Follow struct {
	FollowedID uint `gorm:"primaryKey;autoIncrement:false;column:user_being_followed_id"`
	FollowerID uint `gorm:"primaryKey;autoIncrement:false;column:user_following_id"`

	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
