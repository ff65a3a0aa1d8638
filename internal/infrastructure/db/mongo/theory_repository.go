package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grandline/theories/internal/core/domain"
)

const collectionTheories = "theories"

type TheoryRepository struct {
	coll *mongo.Collection
}

func NewTheoryRepository(db *mongo.Database) *TheoryRepository {
	return &TheoryRepository{coll: db.Collection(collectionTheories)}
}

type mongoTheory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Category  string             `bson:"category"`
	Title     string             `bson:"title"`
	CreatedBy string             `bson:"created_by"`
	Content   string             `bson:"content"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func toDomainTheory(mt mongoTheory) domain.Theory {
	return domain.Theory{
		ID:        mt.ID.Hex(),
		Category:  mt.Category,
		Title:     mt.Title,
		CreatedBy: mt.CreatedBy,
		Content:   mt.Content,
		CreatedAt: unixToTime(mt.CreatedAt),
		UpdatedAt: unixToTime(mt.UpdatedAt),
	}
}

// parseID converts a hex id from a URL into an ObjectID, mapping malformed
// input to domain.ErrInvalidTheoryID instead of faulting.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidTheoryID
	}
	return oid, nil
}

func (r *TheoryRepository) Insert(ctx context.Context, t *domain.Theory) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTheory{
		Category:  t.Category,
		Title:     t.Title,
		CreatedBy: t.CreatedBy,
		Content:   t.Content,
		CreatedAt: t.CreatedAt.Unix(),
		UpdatedAt: t.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert theory: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert theory: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *TheoryRepository) FindByID(ctx context.Context, id string) (*domain.Theory, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTheory
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTheoryNotFound
		}
		return nil, fmt.Errorf("find theory: %w", err)
	}

	t := toDomainTheory(mt)
	return &t, nil
}

// Update replaces the mutable fields in place, including created_by. The
// original created_at is preserved.
func (r *TheoryRepository) Update(ctx context.Context, id string, t *domain.Theory) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"category":   t.Category,
		"title":      t.Title,
		"created_by": t.CreatedBy,
		"content":    t.Content,
		"updated_at": t.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update theory: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTheoryNotFound
	}
	return nil
}

// Delete removes the document. Deleting an id that matches nothing is a
// silent no-op.
func (r *TheoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete theory: %w", err)
	}
	return nil
}

func (r *TheoryRepository) FindAll(ctx context.Context) ([]domain.Theory, error) {
	return r.find(ctx, bson.M{})
}

func (r *TheoryRepository) FindByCategory(ctx context.Context, category string) ([]domain.Theory, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *TheoryRepository) find(ctx context.Context, filter bson.M) ([]domain.Theory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find theories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoTheory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode theories: %w", err)
	}

	theories := make([]domain.Theory, 0, len(docs))
	for _, mt := range docs {
		theories = append(theories, toDomainTheory(mt))
	}
	return theories, nil
}
