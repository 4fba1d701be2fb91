package service

import (
	"context"
	"errors"

	"aidea-server/models"
	"aidea-server/repository"
	"aidea-server/utils"

	log "github.com/sirupsen/logrus"
)

// BoardPublisher receives every board that was written successfully.
type BoardPublisher interface {
	PublishBoard(userID string, board models.Board)
}

// BoardService reads and writes one board document per user.
type BoardService struct {
	repo      repository.BoardRepositoryInterface
	publisher BoardPublisher
	newID     func() string
	logger    *log.Logger
}

// NewBoardService accepts a nil repo: every call then fails with
// ErrStorageUnavailable.
func NewBoardService(repo repository.BoardRepositoryInterface, publisher BoardPublisher, logger *log.Logger) *BoardService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardService{
		repo:      repo,
		publisher: publisher,
		newID:     utils.GenerateID,
		logger:    logger,
	}
}

// GetBoard returns the user's board, creating and persisting the default
// board on first access.
func (s *BoardService) GetBoard(ctx context.Context, userID string) (models.Board, error) {
	if s.repo == nil {
		return models.Board{}, ErrStorageUnavailable
	}

	board, err := s.repo.FindBoard(ctx, userID)
	if err == nil {
		return board, nil
	}
	if !errors.Is(err, repository.ErrBoardNotFound) {
		return models.Board{}, storageError("find board", err)
	}

	board = models.NewDefaultBoard(s.newID())
	if err := s.repo.SaveBoard(ctx, userID, board); err != nil {
		return models.Board{}, storageError("create default board", err)
	}
	s.logger.WithField("user", userID).Info("created default board")
	return board, nil
}

// PutBoard validates and then overwrites the user's board. Concurrent writers
// are not serialized; the last write wins.
func (s *BoardService) PutBoard(ctx context.Context, userID string, board models.Board) error {
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	if err := board.Validate(); err != nil {
		return err
	}
	if err := s.repo.SaveBoard(ctx, userID, board); err != nil {
		return storageError("save board", err)
	}
	if s.publisher != nil {
		s.publisher.PublishBoard(userID, board)
	}
	return nil
}
