// Package mongo implements the record store on MongoDB, the backing store the
// job portal was first deployed on.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/store"
)

// Collection name constants.
const (
	colUsers = "users"
	colJobs  = "jobs"
)

var _ store.Store = (*Store)(nil)

// Store is a MongoDB implementation of store.Store. The caller owns the client.
type Store struct {
	client *mongod.Client
	db     *mongod.Database
}

// Connect dials uri and verifies the connection with a primary ping.
func Connect(ctx context.Context, uri string) (*mongod.Client, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, nil
}

// New creates a store on database of client.
func New(client *mongod.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Migrate creates the indexes the store relies on.
func (s *Store) Migrate(ctx context.Context) error {
	for col, idx := range migrationIndexes() {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close is a no-op because the caller owns the client lifecycle.
func (s *Store) Close() error {
	return nil
}

func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colJobs: {
			{Keys: bson.D{
				{Key: "created_by", Value: 1},
				{Key: "created_at", Value: -1},
			}},
		},
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// ── users ────────────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, u); err != nil {
		if mongod.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return fmt.Errorf("mongo: create user: %w", err)
	}
	return nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.db.Collection(colUsers).FindOne(ctx, filter).Decode(&u); err != nil {
		if isNoDocuments(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) UpdateUserProfile(ctx context.Context, u *models.User) error {
	res, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"email":      u.Email,
			"location":   u.Location,
			"updated_at": u.UpdatedAt,
		}},
	)
	if err != nil {
		if mongod.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return fmt.Errorf("mongo: update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	res, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": passwordHash, "updated_at": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("mongo: update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ── jobs ─────────────────────────────────────────────────────────

// filterDoc translates f into a query document. The search term is quoted so
// it matches literally.
func filterDoc(f store.JobFilter) bson.M {
	doc := bson.M{"created_by": f.Owner()}
	if f.Status() != "" {
		doc["status"] = string(f.Status())
	}
	if f.WorkType() != "" {
		doc["work_type"] = string(f.WorkType())
	}
	if f.Search() != "" {
		doc["position"] = bson.Regex{Pattern: regexp.QuoteMeta(f.Search()), Options: "i"}
	}
	return doc
}

// updateDoc translates upd into a $set document.
func updateDoc(upd models.JobUpdate, updatedAt time.Time) bson.M {
	set := bson.M{"updated_at": updatedAt}
	if upd.Company != nil {
		set["company"] = *upd.Company
	}
	if upd.Position != nil {
		set["position"] = *upd.Position
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.WorkType != nil {
		set["work_type"] = string(*upd.WorkType)
	}
	if upd.WorkLocation != nil {
		set["work_location"] = *upd.WorkLocation
	}
	return bson.M{"$set": set}
}

func (s *Store) CreateJob(ctx context.Context, j *models.Job) error {
	if _, err := s.db.Collection(colJobs).InsertOne(ctx, j); err != nil {
		return fmt.Errorf("mongo: create job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := s.db.Collection(colJobs).FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if isNoDocuments(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get job: %w", err)
	}
	return &j, nil
}

func (s *Store) FindJobs(ctx context.Context, f store.JobFilter, page store.Page) ([]models.Job, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Size))

	cursor, err := s.db.Collection(colJobs).Find(ctx, filterDoc(f), findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]models.Job, 0)
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("mongo: list jobs decode: %w", err)
	}
	return jobs, nil
}

func (s *Store) CountJobs(ctx context.Context, f store.JobFilter) (int64, error) {
	n, err := s.db.Collection(colJobs).CountDocuments(ctx, filterDoc(f))
	if err != nil {
		return 0, fmt.Errorf("mongo: count jobs: %w", err)
	}
	return n, nil
}

// UpdateOwnedJob uses FindOneAndUpdate so the ownership check and the write are one operation.
func (s *Store) UpdateOwnedJob(ctx context.Context, id, owner string, upd models.JobUpdate, updatedAt time.Time) (*models.Job, error) {
	var j models.Job
	err := s.db.Collection(colJobs).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "created_by": owner},
		updateDoc(upd, updatedAt),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&j)
	if err != nil {
		if isNoDocuments(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: update job: %w", err)
	}
	return &j, nil
}

func (s *Store) DeleteOwnedJob(ctx context.Context, id, owner string) error {
	res, err := s.db.Collection(colJobs).DeleteOne(ctx, bson.M{"_id": id, "created_by": owner})
	if err != nil {
		return fmt.Errorf("mongo: delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// statusPipeline groups an owner's jobs by status.
func statusPipeline(owner string) mongod.Pipeline {
	return mongod.Pipeline{
		{{Key: "$match", Value: bson.M{"created_by": owner}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "status": "$_id", "count": 1}}},
		{{Key: "$sort", Value: bson.M{"status": 1}}},
	}
}

func (s *Store) CountJobsByStatus(ctx context.Context, owner string) ([]models.StatusCount, error) {
	cursor, err := s.db.Collection(colJobs).Aggregate(ctx, statusPipeline(owner))
	if err != nil {
		return nil, fmt.Errorf("mongo: job stats: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make([]models.StatusCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("mongo: job stats decode: %w", err)
	}
	return counts, nil
}

func (s *Store) JobCreationTimes(ctx context.Context, owner string) ([]time.Time, error) {
	findOpts := options.Find().SetProjection(bson.M{"created_at": 1})
	cursor, err := s.db.Collection(colJobs).Find(ctx, bson.M{"created_by": owner}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: job times: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongo: job times decode: %w", err)
	}

	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.CreatedAt
	}
	return times, nil
}
