package model

import "time"

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(200);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	PhoneNumber  string `gorm:"type:varchar(20)"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time

	Roles []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RoleNames はロールをラベルの一覧にして返す。
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}

// HasAnyRole はいずれかのロールを持つか確認する。
func (u *User) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, r := range u.Roles {
			if r.Role == want {
				return true
			}
		}
	}
	return false
}

type UserRole struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	UserID int64  `gorm:"not null;uniqueIndex:idx_user_roles_user_role"`
	Role   string `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_roles_user_role"`
}
