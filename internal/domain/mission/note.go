package mission

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spycat-agency/service-mission/internal/common/domain"
)

const MaxNoteLength = 1000

// Note is a free-text annotation on a target.
type Note struct {
	id       int64
	targetID int64
	message  string
}

// NewNote validates a note. Whether the target still accepts notes is checked
// at write time against the stored target.
func NewNote(targetID int64, message string) (*Note, error) {
	if targetID <= 0 {
		return nil, domain.NewValidationError("target_id must be positive")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(message) > MaxNoteLength {
		return nil, domain.NewValidationError(fmt.Sprintf("message must be at most %d characters", MaxNoteLength))
	}
	return &Note{targetID: targetID, message: message}, nil
}

// ReconstructNote rebuilds a Note from persistence data (no validation).
func ReconstructNote(id, targetID int64, message string) *Note {
	return &Note{id: id, targetID: targetID, message: message}
}

func (n *Note) ID() int64       { return n.id }
func (n *Note) TargetID() int64 { return n.targetID }
func (n *Note) Message() string { return n.message }
