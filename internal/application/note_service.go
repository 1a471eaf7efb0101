package application

import (
	"context"

	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"go.uber.org/zap"
)

// CreateNoteRequest is the request DTO for annotating a target.
type CreateNoteRequest struct {
	TargetID int64  `json:"target_id" binding:"required,gt=0"`
	Message  string `json:"message" binding:"required,min=1,max=1000"`
}

// NoteDTO is the API response representation of a note.
type NoteDTO struct {
	ID       int64  `json:"id"`
	TargetID int64  `json:"target_id"`
	Message  string `json:"message"`
}

// NoteService implements use cases for target notes.
type NoteService struct {
	repo   missionDomain.NoteRepository
	logger *zap.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(repo missionDomain.NoteRepository, logger *zap.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger}
}

// CreateNote adds a note to a target that is still open.
func (s *NoteService) CreateNote(ctx context.Context, req CreateNoteRequest) (*NoteDTO, error) {
	note, err := missionDomain.NewNote(req.TargetID, req.Message)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		zap.Int64("note_id", saved.ID()),
		zap.Int64("target_id", saved.TargetID()),
	)
	result := toNoteDTO(saved)
	return &result, nil
}

// ListNotes returns every note.
func (s *NoteService) ListNotes(ctx context.Context) ([]NoteDTO, error) {
	notes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]NoteDTO, len(notes))
	for i, n := range notes {
		dtos[i] = toNoteDTO(n)
	}
	return dtos, nil
}

func toNoteDTO(n *missionDomain.Note) NoteDTO {
	return NoteDTO{
		ID:       n.ID(),
		TargetID: n.TargetID(),
		Message:  n.Message(),
	}
}
