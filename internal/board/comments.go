package board

import (
	"context"
	"fmt"

	"taskboard/internal/mention"
	"taskboard/internal/model"
	"taskboard/internal/store"
)

// CreateCommentInput holds the fields for a new comment. Mentions is
// the explicitly supplied mention list; it is unioned with the users
// resolved from @tokens in Content.
type CreateCommentInput struct {
	TaskID   string   `json:"task_id"`
	Content  string   `json:"content"`
	Mentions []string `json:"mentions"`
	ParentID *string  `json:"parent_id"`
}

// CreateComment stores a comment, writes its history entry, and sends
// one mention notification per resolved mention. Tokens resolving to
// the same user more than once notify that user more than once.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput, actorID string) (*model.Comment, error) {
	actor, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := s.store.GetTaskByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	directory, err := s.store.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	mentions := mention.Union(mention.Extract(in.Content, directory), in.Mentions)

	comment, err := s.store.CreateComment(ctx, model.Comment{
		TaskID:   task.ID,
		UserID:   actorID,
		Content:  in.Content,
		Mentions: mentions,
		ParentID: in.ParentID,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.store.AppendHistory(ctx, model.HistoryEntry{
		TaskID:   task.ID,
		ActorID:  actorID,
		Action:   model.ActionComment,
		NewValue: "comment added",
	})
	if err != nil {
		return nil, err
	}

	for _, mentionedID := range mentions {
		s.notifier.Notify(ctx, mentionedID, model.NotificationMention,
			fmt.Sprintf("%s mentioned you in a comment", actor.Name),
			task.ID)
	}

	return comment, nil
}

// UpdateComment edits a comment's content. Only the author may edit.
func (s *Service) UpdateComment(ctx context.Context, id, content string, actorID string) (*model.Comment, error) {
	comment, err := s.store.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, fmt.Errorf("comment %s: %w", id, store.ErrForbidden)
	}

	if content != "" {
		comment.Content = content
	}
	if err := s.store.UpdateComment(ctx, *comment); err != nil {
		return nil, err
	}
	return s.store.GetCommentByID(ctx, id)
}

// DeleteComment removes a comment. The author or an admin may delete.
func (s *Service) DeleteComment(ctx context.Context, id, actorID string) error {
	comment, err := s.store.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	actor, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID && actor.Role != model.RoleAdmin {
		return fmt.Errorf("comment %s: %w", id, store.ErrForbidden)
	}

	return s.store.DeleteComment(ctx, id)
}

// TaskComments retrieves a task's top-level comments, oldest first.
func (s *Service) TaskComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.store.GetCommentsByTask(ctx, taskID)
}

// Replies retrieves the replies of one comment, oldest first.
func (s *Service) Replies(ctx context.Context, commentID string) ([]model.Comment, error) {
	return s.store.GetReplies(ctx, commentID)
}
