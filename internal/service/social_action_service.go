package service

import (
	"context"
	"errors"

	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/repository"
)

// SocialActionService tracks community-service placements and hours.
type SocialActionService struct {
	students      StudentStore
	socialActions SocialActionStore
	events        EventPublisher
}

// NewSocialActionService creates a new SocialActionService.
func NewSocialActionService(students StudentStore, socialActions SocialActionStore, events EventPublisher) *SocialActionService {
	return &SocialActionService{students: students, socialActions: socialActions, events: events}
}

// List returns every record keyed by student ID.
func (s *SocialActionService) List(ctx context.Context) (map[string]model.SocialActionRecord, error) {
	return s.socialActions.ListAll(ctx)
}

// Save merges the changed fields over the student's current record and upserts it.
func (s *SocialActionService) Save(ctx context.Context, studentID string, req model.UpdateSocialActionRequest) (*model.SocialActionRecord, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	current := model.SocialActionRecord{StudentID: studentID}
	existing, err := s.socialActions.GetByStudent(ctx, studentID)
	switch {
	case err == nil:
		current = *existing
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	merged := req.Apply(current)
	merged.StudentID = studentID
	if err := s.socialActions.Upsert(ctx, &merged); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, model.DashboardEvent{
		Type:      model.EventSocialActionSaved,
		StudentID: studentID,
	})
	return &merged, nil
}
