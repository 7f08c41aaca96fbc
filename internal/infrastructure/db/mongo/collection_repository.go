package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storekit/storefront-api/internal/core/domain"
)

const collectionCollection = "collections"

type CollectionRepository struct {
	coll *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) *CollectionRepository {
	return &CollectionRepository{coll: db.Collection(collectionCollection)}
}

type collectionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (d *collectionDoc) toDomain() *domain.Collection {
	return &domain.Collection{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}

func (r *CollectionRepository) Create(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	now := time.Now().UTC()
	doc := collectionDoc{
		Name:      collection.Name,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert collection: %w", err)
	}

	created := domain.Collection{Name: collection.Name, CreatedAt: now, UpdatedAt: now}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CollectionRepository) Update(ctx context.Context, id, name string) (*domain.Collection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCollectionNotFound
	}

	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC().Unix()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc collectionDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("update collection: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CollectionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCollectionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCollectionNotFound
	}
	return nil
}

func (r *CollectionRepository) FindByID(ctx context.Context, id string) (*domain.Collection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCollectionNotFound
	}

	var doc collectionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("find collection: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CollectionRepository) FindAll(ctx context.Context) ([]domain.Collection, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Collection
	for cursor.Next(ctx) {
		var doc collectionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return out, nil
}
