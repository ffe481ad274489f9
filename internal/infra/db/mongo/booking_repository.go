package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	domainrange "github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id string) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Save upserts with an optimistic version filter so concurrent admin edits
// surface as ErrConcurrentUpdate instead of silently overwriting.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

// ConfirmedRanges returns date ranges of confirmed bookings for the room
// whose checkout is on or after the given day, ordered by check-in.
func (r *BookingRepository) ConfirmedRanges(ctx context.Context, roomID string, from time.Time) ([]domainrange.DateRange, error) {
	filter := bson.M{
		"room_id":         roomID,
		"status":          string(domainbooking.StatusConfirmed),
		"range.check_out": bson.M{"$gte": from.UnixMilli()},
	}
	opts := options.Find().
		SetProjection(bson.M{"range": 1}).
		SetSort(bson.D{{Key: "range.check_in", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainrange.DateRange
	for cursor.Next(ctx) {
		var doc struct {
			Range rangeDocument `bson:"range"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainrange.DateRange{
			CheckIn:  timestampToTime(doc.Range.CheckIn),
			CheckOut: timestampToTime(doc.Range.CheckOut),
		})
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID         string        `bson:"_id"`
	GuestName  string        `bson:"guest_name"`
	Email      string        `bson:"email,omitempty"`
	Phone      string        `bson:"phone"`
	RoomID     string        `bson:"room_id"`
	RoomName   string        `bson:"room_name"`
	Range      rangeDocument `bson:"range"`
	Guests     int           `bson:"guests"`
	Note       string        `bson:"note,omitempty"`
	TotalPrice int64         `bson:"total_price"`
	Status     string        `bson:"status"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
	Version    int64         `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:         b.ID,
		GuestName:  b.GuestName,
		Email:      b.Email,
		Phone:      b.Phone,
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		Range:      rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
		Guests:     b.Guests,
		Note:       b.Note,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UnixMilli(),
		UpdatedAt:  b.UpdatedAt.UnixMilli(),
		Version:    b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:        d.ID,
		GuestName: d.GuestName,
		Email:     d.Email,
		Phone:     d.Phone,
		RoomID:    d.RoomID,
		RoomName:  d.RoomName,
		Range: domainrange.DateRange{
			CheckIn:  timestampToTime(d.Range.CheckIn),
			CheckOut: timestampToTime(d.Range.CheckOut),
		},
		Guests:     d.Guests,
		Note:       d.Note,
		TotalPrice: d.TotalPrice,
		Status:     domainbooking.Status(d.Status),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
