package service

import (
	"errors"
	"time"

	"school_backend/internal/model"
	"school_backend/internal/repository"
)

type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: eventRepo}
}

type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	EndAt       time.Time `json:"endAt" binding:"required"`
}

func (s *EventService) Create(creatorID uint, req *EventRequest) (*model.SchoolEvent, error) {
	if req.EndAt.Before(req.StartAt) {
		return nil, errors.New("event ends before it starts")
	}

	event := &model.SchoolEvent{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		CreatedBy:   creatorID,
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(id uint, req *EventRequest) (*model.SchoolEvent, error) {
	if req.EndAt.Before(req.StartAt) {
		return nil, errors.New("event ends before it starts")
	}

	event, err := s.EventRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartAt = req.StartAt
	event.EndAt = req.EndAt

	if err := s.EventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(id uint) error {
	return s.EventRepo.Delete(id)
}

func (s *EventService) List(page, pageSize int) ([]model.SchoolEvent, int64, error) {
	return s.EventRepo.List(page, pageSize)
}

func (s *EventService) ListUpcoming(limit int) ([]model.SchoolEvent, error) {
	return s.EventRepo.ListUpcoming(time.Now(), limit)
}
