package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("rooms")}
}

func (r *RoomRepository) ByID(ctx context.Context, id string) (*rooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, rooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*rooms.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	doc := newRoomDocument(room)
	filter := bson.M{"_id": doc.ID, "version": room.Version}
	doc.Version = room.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	room.Version = doc.Version
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return rooms.ErrRoomNotFound
	}
	return nil
}

type roomDocument struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Type        string   `bson:"type,omitempty"`
	NightlyRate int64    `bson:"nightly_rate"`
	Capacity    int      `bson:"capacity"`
	SizeSqm     int      `bson:"size_sqm,omitempty"`
	Image       string   `bson:"image,omitempty"`
	Amenities   []string `bson:"amenities,omitempty"`
	Description string   `bson:"description,omitempty"`
	Available   bool     `bson:"available"`
	Version     int64    `bson:"version"`
}

func newRoomDocument(room *rooms.Room) roomDocument {
	return roomDocument{
		ID:          room.ID,
		Name:        room.Name,
		Type:        room.Type,
		NightlyRate: room.NightlyRate,
		Capacity:    room.Capacity,
		SizeSqm:     room.SizeSqm,
		Image:       room.Image,
		Amenities:   room.Amenities,
		Description: room.Description,
		Available:   room.Available,
		Version:     room.Version,
	}
}

func (d roomDocument) toAggregate() *rooms.Room {
	return &rooms.Room{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		NightlyRate: d.NightlyRate,
		Capacity:    d.Capacity,
		SizeSqm:     d.SizeSqm,
		Image:       d.Image,
		Amenities:   d.Amenities,
		Description: d.Description,
		Available:   d.Available,
		Version:     d.Version,
	}
}
