package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/pkg/docx"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
)

// TaskParse is the queue kind for document parse tasks.
const TaskParse = "document.parse"

// ParsePayload identifies the document a parse task targets.
type ParsePayload struct {
	DocumentID uuid.UUID `json:"document_id"`
}

func (s *system) schedule(ctx context.Context, id uuid.UUID) error {
	task, err := queue.NewTask(TaskParse, ParsePayload{DocumentID: id})
	if err != nil {
		return err
	}
	return s.queue.Submit(ctx, task)
}

// handleParse is the queue handler for TaskParse. Documents that were
// deleted or already picked up by another worker are skipped.
func (s *system) handleParse(ctx context.Context, task queue.Task) error {
	payload, err := queue.Decode[ParsePayload](task)
	if err != nil {
		return err
	}

	err = s.Parse(ctx, payload.DocumentID)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotPending):
		s.logger.Info("parse skipped", "id", payload.DocumentID, "reason", err)
		return nil
	default:
		return err
	}
}

func extractText(data []byte) (string, error) {
	text, err := docx.Extract(data)
	switch {
	case errors.Is(err, docx.ErrUnsupportedFormat):
		return "", fmt.Errorf("unsupported file format: %w", err)
	case err != nil:
		return "", fmt.Errorf("unable to read .docx file: %w", err)
	}
	return text, nil
}
