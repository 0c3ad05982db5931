package mongostore

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
)

const (
	todosCollection    = "todos"
	countersCollection = "counters"
)

// TodoStore keeps todos in a collection keyed by an integer _id. Ids come from
// a per-collection document in the counters collection.
type TodoStore struct {
	client   *mongo.Client
	todos    *mongo.Collection
	counters *mongo.Collection
}

var _ store.TodoStore = (*TodoStore)(nil)

// NewTodoStore uses the todos and counters collections of db. client may be nil
// when the caller owns the connection.
func NewTodoStore(client *mongo.Client, db *mongo.Database) *TodoStore {
	return &TodoStore{
		client:   client,
		todos:    db.Collection(todosCollection),
		counters: db.Collection(countersCollection),
	}
}

// List retrieves all todos ordered by id.
func (s *TodoStore) List(ctx context.Context) ([]models.Todo, error) {
	return s.find(ctx, bson.M{})
}

// Get retrieves a todo by its id.
func (s *TodoStore) Get(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	err := s.todos.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Todo{}, fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		log.Errorf("Failed decoding todo %d: %v", id, err)
		return models.Todo{}, err
	}
	return todo, nil
}

// Filter retrieves the todos matching every set field of filter.
func (s *TodoStore) Filter(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error) {
	query := bson.M{}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}
	if filter.Complete != nil {
		query["complete"] = *filter.Complete
	}
	return s.find(ctx, query)
}

// Create stamps todo with the next counter value and inserts it.
func (s *TodoStore) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Todo{}, err
	}
	todo.ID = id

	if _, err := s.todos.InsertOne(ctx, todo); err != nil {
		log.Errorf("Could not create todo: %v", err)
		return models.Todo{}, err
	}
	return todo, nil
}

// Replace overwrites the document with the given id. It never upserts.
func (s *TodoStore) Replace(ctx context.Context, id int64, todo models.Todo) (models.Todo, error) {
	todo.ID = id
	res, err := s.todos.ReplaceOne(ctx, bson.M{"_id": id}, todo)
	if err != nil {
		log.Errorf("Could not save todo %d: %v", id, err)
		return models.Todo{}, err
	}
	if res.MatchedCount == 0 {
		return models.Todo{}, fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	return todo, nil
}

// Delete removes the document with the given id.
func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	res, err := s.todos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	return nil
}

// Count returns the number of todos.
func (s *TodoStore) Count(ctx context.Context) (int, error) {
	n, err := s.todos.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return int(n), nil
}

// Close disconnects the client if the store owns one.
func (s *TodoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *TodoStore) find(ctx context.Context, query bson.M) ([]models.Todo, error) {
	cursor, err := s.todos.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		log.Errorf("Failed marshalling %v", err)
		return nil, err
	}
	return todos, nil
}

func (s *TodoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": todosCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next todo id: %w", err)
	}
	return counter.Seq, nil
}
