package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
)

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection("gallery")}
}

func (r *GalleryRepository) List(ctx context.Context) ([]*gallery.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*gallery.Item
	for cursor.Next(ctx) {
		var doc galleryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &gallery.Item{
			ID:       doc.ID,
			Src:      doc.Src,
			Alt:      doc.Alt,
			Category: doc.Category,
			Position: doc.Position,
		})
	}
	return out, cursor.Err()
}

func (r *GalleryRepository) Save(ctx context.Context, item *gallery.Item) error {
	doc := galleryDocument{
		ID:       item.ID,
		Src:      item.Src,
		Alt:      item.Alt,
		Category: item.Category,
		Position: item.Position,
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return gallery.ErrItemNotFound
	}
	return nil
}

// Reorder rewrites positions to match the supplied id order.
func (r *GalleryRepository) Reorder(ctx context.Context, ids []string) error {
	models := make([]mongo.WriteModel, 0, len(ids))
	for pos, id := range ids {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"position": pos}}))
	}
	if len(models) == 0 {
		return nil
	}
	_, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

type galleryDocument struct {
	ID       string `bson:"_id"`
	Src      string `bson:"src"`
	Alt      string `bson:"alt"`
	Category string `bson:"category,omitempty"`
	Position int    `bson:"position"`
}
