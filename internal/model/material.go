package model

// EducationMaterial 班级学习资料，文件本体存 MinIO 或本地磁盘
type EducationMaterial struct {
	BaseModel
	ClassroomID uint       `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	FileName    string     `gorm:"size:255" json:"fileName"`
	ObjectKey   string     `gorm:"size:255" json:"-"`
	FileURL     string     `gorm:"size:512" json:"fileUrl"`
	ContentType string     `gorm:"size:100" json:"contentType"`
	Size        int64      `json:"size"`
	UploadedBy  uint       `gorm:"index;type:bigint unsigned" json:"uploadedBy"`
}

func (EducationMaterial) TableName() string {
	return "education_materials"
}
