package models

import "time"

// ForumMembershipRole defines a member's role in a forum.
type ForumMembershipRole string

const (
	// ForumMembershipRoleOwner is the forum creator role.
	ForumMembershipRoleOwner ForumMembershipRole = "owner"
	// ForumMembershipRoleMember is the default follower role.
	ForumMembershipRoleMember ForumMembershipRole = "member"
)

// Forum is a topical community space (e.g. rice growers, livestock, irrigation).
// Commenting, liking, and posting inside a forum require a membership row.
type Forum struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Slug            string    `gorm:"size:32;not null;uniqueIndex" json:"slug"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedByUserID uint      `gorm:"not null" json:"created_by_user_id"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Forum) TableName() string {
	return "forums"
}

// ForumMembership maps users to forums they follow. Presence of a row means
// "following"; the creator's owner row is written in the same transaction as
// the forum itself.
type ForumMembership struct {
	ForumID   uint                `gorm:"primaryKey;autoIncrement:false" json:"forum_id"`
	Forum     *Forum              `gorm:"foreignKey:ForumID" json:"forum,omitempty"`
	UserID    uint                `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      ForumMembershipRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
