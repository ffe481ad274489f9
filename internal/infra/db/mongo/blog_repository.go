package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thienvyma/tagiangecolodge/internal/domain/blog"
)

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("posts")}
}

func (r *BlogRepository) ByID(ctx context.Context, id string) (*blog.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BlogRepository) BySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *BlogRepository) findOne(ctx context.Context, filter bson.M) (*blog.Post, error) {
	var doc postDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blog.ErrPostNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BlogRepository) List(ctx context.Context) ([]*blog.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*blog.Post
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *BlogRepository) Save(ctx context.Context, post *blog.Post) error {
	doc := newPostDocument(post)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

type postDocument struct {
	ID          string      `bson:"_id"`
	Slug        string      `bson:"slug"`
	Title       string      `bson:"title"`
	Excerpt     string      `bson:"excerpt,omitempty"`
	Content     string      `bson:"content"`
	CoverImage  string      `bson:"cover_image,omitempty"`
	Category    string      `bson:"category,omitempty"`
	Tags        []string    `bson:"tags,omitempty"`
	Author      string      `bson:"author,omitempty"`
	PublishedAt int64       `bson:"published_at"`
	ReadTime    int         `bson:"read_time"`
	Featured    bool        `bson:"featured"`
	SEO         seoDocument `bson:"seo"`
}

type seoDocument struct {
	MetaTitle       string `bson:"meta_title,omitempty"`
	MetaDescription string `bson:"meta_description,omitempty"`
	FocusKeyword    string `bson:"focus_keyword,omitempty"`
}

func newPostDocument(post *blog.Post) postDocument {
	return postDocument{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		CoverImage:  post.CoverImage,
		Category:    post.Category,
		Tags:        post.Tags,
		Author:      post.Author,
		PublishedAt: post.PublishedAt.UnixMilli(),
		ReadTime:    post.ReadTime,
		Featured:    post.Featured,
		SEO: seoDocument{
			MetaTitle:       post.SEO.MetaTitle,
			MetaDescription: post.SEO.MetaDescription,
			FocusKeyword:    post.SEO.FocusKeyword,
		},
	}
}

func (d postDocument) toAggregate() *blog.Post {
	return &blog.Post{
		ID:          d.ID,
		Slug:        d.Slug,
		Title:       d.Title,
		Excerpt:     d.Excerpt,
		Content:     d.Content,
		CoverImage:  d.CoverImage,
		Category:    d.Category,
		Tags:        d.Tags,
		Author:      d.Author,
		PublishedAt: timestampToTime(d.PublishedAt),
		ReadTime:    d.ReadTime,
		Featured:    d.Featured,
		SEO: blog.SEO{
			MetaTitle:       d.SEO.MetaTitle,
			MetaDescription: d.SEO.MetaDescription,
			FocusKeyword:    d.SEO.FocusKeyword,
		},
	}
}
