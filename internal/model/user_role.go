package model

// UserRole attaches an authorization role tag to an identity.
// One row per (identity, role) pair.
type UserRole struct {
	ID       uint   `gorm:"primarykey"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:idx_user_role"`
	Role     string `gorm:"column:role;type:varchar(20);not null;uniqueIndex:idx_user_role"`
}

func (UserRole) TableName() string {
	return "user_role"
}
