package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/task-system/internal/core/domain"
)

const tasksCollection = "tasks"

// TaskRepository implements ports.TaskRepository on MongoDB. Per-document
// atomicity of UpdateOne/DeleteOne is the serialization unit the lifecycle
// operations rely on; no multi-document transactions are needed.
type TaskRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, coll: db.Collection(tasksCollection)}
}

type taskDoc struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	AssignedTo  *int64    `bson:"assigned_to,omitempty"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
}

// taskRow is a taskDoc as produced by the $lookup pipeline: the assignee
// array is empty for unassigned tasks, one element otherwise.
type taskRow struct {
	taskDoc  `bson:",inline"`
	Assignee []struct {
		Username string `bson:"username"`
	} `bson:"assignee"`
}

func (r taskRow) toDomain() domain.TaskWithAssignee {
	out := domain.TaskWithAssignee{
		Task: domain.Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			AssignedTo:  r.AssignedTo,
			Status:      domain.TaskStatus(r.Status),
			CreatedAt:   r.CreatedAt.UTC(),
		},
	}
	if len(r.Assignee) > 0 {
		out.AssignedUsername = r.Assignee[0].Username
	}
	return out
}

// EnsureIndexes creates the listing indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, tasksCollection)
	if err != nil {
		return 0, err
	}

	doc := taskDoc{
		ID:          id,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  task.AssignedTo,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]domain.TaskWithAssignee, error) {
	return r.aggregate(ctx, nil)
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.TaskWithAssignee, error) {
	return r.aggregate(ctx, bson.M{"assigned_to": userID})
}

// aggregate runs the shared listing pipeline: optional match, assignee
// $lookup, newest first with id as tiebreak.
func (r *TaskRepository) aggregate(ctx context.Context, match bson.M) ([]domain.TaskWithAssignee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var pipeline mongo.Pipeline
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "assigned_to"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "assignee"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.TaskWithAssignee
	for cur.Next(ctx) {
		var row taskRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		out = append(out, row.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// MarkCompleted filters on the id alone, not the current status, which is
// what makes the transition idempotent: a second call matches the document
// again and rewrites the same value.
func (r *TaskRepository) MarkCompleted(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(domain.StatusCompleted)}},
	)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
