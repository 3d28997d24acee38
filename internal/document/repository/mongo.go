package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/padkit/helipad/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a "documents" collection. Integer ids
// come from a sequence document in the "counters" collection.
type MongoRepo struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	col := db.Collection("documents")
	// ensure a unique index on "id" for fast lookups
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col, counters: db.Collection("counters")}
}

func (m *MongoRepo) nextID(ctx context.Context) (int, error) {
	var seq struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.counters.FindOneAndUpdate(ctx, bson.M{"_id": "documents"}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&seq)
	if err != nil {
		return 0, err
	}
	return seq.Seq, nil
}

func (m *MongoRepo) Create(ctx context.Context, doc *document.Document) (int, error) {
	id, err := m.nextID(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	doc.ID = id
	doc.CreatedOn = now
	doc.UpdatedOn = now
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	return id, nil
}

func (m *MongoRepo) Get(ctx context.Context, owner string, id int) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, bson.M{"id": id, "owner": owner}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) find(ctx context.Context, filter bson.M) ([]*document.Document, error) {
	cur, err := m.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) List(ctx context.Context, owner string) ([]*document.Document, error) {
	return m.find(ctx, bson.M{"owner": owner})
}

func (m *MongoRepo) Search(ctx context.Context, owner, term string) ([]*document.Document, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return m.find(ctx, bson.M{
		"owner": owner,
		"$or":   bson.A{bson.M{"title": re}, bson.M{"source": re}},
	})
}

func (m *MongoRepo) ByTag(ctx context.Context, owner, tag string) ([]*document.Document, error) {
	return m.find(ctx, bson.M{"owner": owner, "tags": tag})
}

func (m *MongoRepo) Update(ctx context.Context, owner string, id int, p document.Patch) error {
	set := bson.M{"updatedOn": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Source != nil {
		set["source"] = *p.Source
	}
	if p.Tags != nil {
		set["tags"] = document.SplitTags(*p.Tags)
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id, "owner": owner}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, owner string, id int) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id, "owner": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	_ Repository = (*MemoryRepo)(nil)
	_ Repository = (*MongoRepo)(nil)
)
