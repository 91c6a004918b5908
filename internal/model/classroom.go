package model

import "fmt"

// swagger:model Classroom
type Classroom struct {
	BaseModel
	GradeLevel   string `gorm:"size:50;not null" json:"gradeLevel"`
	ClassSection string `gorm:"size:50;not null" json:"classSection"`
	SubjectName  string `gorm:"size:100;not null" json:"subjectName"`
	InstructorID uint   `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Instructor   *User  `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

// DisplayName 报表中使用的班级展示名，如 "Grade 3 - Hope"
func (c *Classroom) DisplayName() string {
	return fmt.Sprintf("%s - %s", c.GradeLevel, c.ClassSection)
}

// ClassroomStudent 班级-学生 选课关系
type ClassroomStudent struct {
	BaseModel
	ClassroomID uint  `gorm:"index:idx_classroom_student,unique;type:bigint unsigned" json:"classroomId"`
	StudentID   uint  `gorm:"index:idx_classroom_student,unique;type:bigint unsigned" json:"studentId"`
	Student     *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ClassroomStudent) TableName() string {
	return "classroom_students"
}
