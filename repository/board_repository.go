package repository

import (
	"context"
	"errors"
	"time"

	"aidea-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBoardNotFound = errors.New("board not found")

type BoardRepositoryInterface interface {
	FindBoard(ctx context.Context, userID string) (models.Board, error)
	SaveBoard(ctx context.Context, userID string, board models.Board) error
}

// boardDocument is the stored shape: the board fields inlined next to the
// owning user's id.
type boardDocument struct {
	UserID       string `bson:"_id"`
	models.Board `bson:",inline"`
}

type BoardRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewBoardRepository(collection *mongo.Collection, timeout time.Duration) *BoardRepository {
	return &BoardRepository{collection: collection, timeout: timeout}
}

func (r *BoardRepository) FindBoard(ctx context.Context, userID string) (models.Board, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc boardDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Board{}, ErrBoardNotFound
	}
	if err != nil {
		return models.Board{}, err
	}
	return doc.Board, nil
}

// SaveBoard replaces the user's board document, creating it if absent.
func (r *BoardRepository) SaveBoard(ctx context.Context, userID string, board models.Board) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := boardDocument{UserID: userID, Board: board}
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": userID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *BoardRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
