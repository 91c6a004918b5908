package model

import "time"

// SchoolEvent 校园活动/公告
type SchoolEvent struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	CreatedBy   uint      `gorm:"index;type:bigint unsigned" json:"createdBy"`
}

func (SchoolEvent) TableName() string {
	return "school_events"
}
