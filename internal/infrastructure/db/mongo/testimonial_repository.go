package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

const collectionTestimonials = "testimonials"

type TestimonialRepository struct {
	col *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{col: db.Collection(collectionTestimonials)}
}

type testimonialDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Company   string             `bson:"company"`
	Position  string             `bson:"position"`
	Message   string             `bson:"message"`
	Rating    int                `bson:"rating"`
	Status    string             `bson:"status"`
	CreatedAt int64              `bson:"created_at"`
}

func (d *testimonialDoc) toDomain() *domain.Testimonial {
	return &domain.Testimonial{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Company:   d.Company,
		Position:  d.Position,
		Message:   d.Message,
		Rating:    d.Rating,
		Status:    domain.TestimonialStatus(d.Status),
		CreatedAt: millisToTime(d.CreatedAt),
	}
}

// Create inserts a new testimonial document and returns its hex id.
func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, testimonialDoc{
		Name:      t.Name,
		Email:     t.Email,
		Company:   t.Company,
		Position:  t.Position,
		Message:   t.Message,
		Rating:    t.Rating,
		Status:    string(t.Status),
		CreatedAt: toMillis(t.CreatedAt),
	})
	if err != nil {
		return "", fmt.Errorf("insert testimonial: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert testimonial: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *TestimonialRepository) List(ctx context.Context, filter ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	var docs []testimonialDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode testimonials: %w", err)
	}

	out := make([]*domain.Testimonial, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *TestimonialRepository) UpdateStatus(ctx context.Context, id string, status domain.TestimonialStatus) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return domain.ErrTestimonialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return domain.ErrTestimonialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) Count(ctx context.Context, status domain.TestimonialStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if status != "" {
		q["status"] = string(status)
	}
	n, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count testimonials: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the index used by the public listing.
func (r *TestimonialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
