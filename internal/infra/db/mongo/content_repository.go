package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thienvyma/tagiangecolodge/internal/domain/content"
)

// ContentRepository stores one document per site section, guarded by an
// optimistic version filter so two admins editing the same section cannot
// silently clobber each other.
type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection("content_sections")}
}

func (r *ContentRepository) Get(ctx context.Context, name content.SectionName) (*content.Section, error) {
	var doc sectionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(name)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, content.ErrSectionNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ContentRepository) All(ctx context.Context) ([]*content.Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*content.Section
	for cursor.Next(ctx) {
		var doc sectionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ContentRepository) Save(ctx context.Context, s *content.Section) error {
	doc := sectionDocument{
		Name:      string(s.Name),
		Payload:   string(s.Payload),
		Version:   s.Version + 1,
		UpdatedAt: s.UpdatedAt.UnixMilli(),
	}
	filter := bson.M{"_id": doc.Name, "version": s.Version}
	if s.Version == 0 {
		// First write of a section: match either no document or version 0.
		res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return content.ErrVersionConflict
			}
			return err
		}
		if res.MatchedCount == 0 && res.UpsertedCount == 0 {
			return content.ErrVersionConflict
		}
		s.Version = doc.Version
		return nil
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return content.ErrVersionConflict
	}
	s.Version = doc.Version
	return nil
}

type sectionDocument struct {
	Name      string `bson:"_id"`
	Payload   string `bson:"payload"`
	Version   int64  `bson:"version"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (d sectionDocument) toAggregate() *content.Section {
	return &content.Section{
		Name:      content.SectionName(d.Name),
		Payload:   json.RawMessage(d.Payload),
		Version:   d.Version,
		UpdatedAt: time.UnixMilli(d.UpdatedAt).UTC(),
	}
}
