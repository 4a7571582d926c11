package model

import "fmt"

// Role 用户角色，数据库与接口层以整数传输（0=Staff, 1=Admin）
type Role int

const (
	RoleStaff Role = 0
	RoleAdmin Role = 1
)

// String 返回角色名，用于 JWT 声明与日志
func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "Staff"
	case RoleAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid 是否为已定义角色
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// ParseRole 由角色名解析角色
func ParseRole(s string) (Role, error) {
	switch s {
	case "Staff":
		return RoleStaff, nil
	case "Admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("未知角色 %q", s)
	}
}

// 账号状态
const (
	UserStatusActive = "ACTIVE"
)

// 注册时的默认值
const (
	DefaultDepartment   = "General"
	DefaultCurrentShift = "None"
)

// User 用户表 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	EmployeeID   string `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_employee_id" json:"employee_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role   `gorm:"type:smallint;not null;default:0"               json:"role"`
	Department   string `gorm:"type:varchar(100);not null;default:'General'"   json:"department"`
	CurrentShift string `gorm:"type:varchar(50);not null;default:'None'"       json:"current_shift"`
	Status       string `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
