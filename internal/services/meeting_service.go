package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nexcrm/internal/core"
	"nexcrm/internal/storage"
)

// MeetingService handles meeting lifecycle operations.
type MeetingService struct {
	storage *storage.SQLiteRepository
}

func NewMeetingService(storage *storage.SQLiteRepository) *MeetingService {
	return &MeetingService{storage: storage}
}

func (s *MeetingService) CreateMeeting(ctx context.Context, m core.Meeting) (*core.Meeting, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.CreateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("save meeting: %w", err)
	}

	return &m, nil
}

// UpdateMeeting replaces the stored record wholesale.
func (s *MeetingService) UpdateMeeting(ctx context.Context, m core.Meeting) (*core.Meeting, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.storage.ReplaceMeeting(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, id string) error {
	return s.storage.DeleteMeeting(ctx, id)
}
