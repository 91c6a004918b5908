package repository

import (
	"time"

	"school_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.SchoolEvent) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.SchoolEvent, error) {
	var event model.SchoolEvent
	if err := r.DB.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListUpcoming 按开始时间升序返回未结束的活动
func (r *EventRepository) ListUpcoming(now time.Time, limit int) ([]model.SchoolEvent, error) {
	var events []model.SchoolEvent
	query := r.DB.Where("end_at >= ?", now).Order("start_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *EventRepository) List(page, pageSize int) ([]model.SchoolEvent, int64, error) {
	var events []model.SchoolEvent
	var total int64

	if err := r.DB.Model(&model.SchoolEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("start_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	return events, total, err
}

func (r *EventRepository) Update(event *model.SchoolEvent) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Delete(&model.SchoolEvent{}, id).Error
}
