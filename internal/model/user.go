package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Parent  UserRole = "parent"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;default:'student';index" json:"role"`
	GradeLevel string     `gorm:"size:50" json:"gradeLevel"` // 仅学生使用
	Avatar     string     `gorm:"size:255" json:"avatar"`
	Disabled   bool       `gorm:"default:false" json:"disabled"`
	ParentID   *uint      `gorm:"index;type:bigint unsigned" json:"parentId,omitempty"` // 学生关联的家长
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
