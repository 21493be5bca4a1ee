package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"profanity/pkg/storage"
)

const collName = "words"

type wordDoc struct {
	List  string    `bson:"list"`
	Word  string    `bson:"word"`
	Added time.Time `bson:"added"`
}

type Storage struct {
	client *mongo.Client
	dbName string
}

func New(ctx context.Context, conf *Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, conf.Options())
	if err != nil {
		return nil, err
	}

	s := Storage{client: client, dbName: conf.DBName}
	if err := s.createIndex(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return &s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.client.Disconnect(ctx)
}

func (s *Storage) coll() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(collName)
}

// Words returns the words of list in insertion order.
func (s *Storage) Words(ctx context.Context, list string) ([]string, error) {
	if err := storage.ValidateList(list); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "added", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll().Find(ctx, bson.M{"list": list}, opts)
	if err != nil {
		return nil, err
	}

	var docs []wordDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(docs))
	for _, d := range docs {
		words = append(words, d.Word)
	}

	return words, nil
}

// AddWords upserts the lower-cased words. Words already on the list keep
// their original position.
func (s *Storage) AddWords(ctx context.Context, list string, words ...string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	coll := s.coll()
	for _, w := range words {
		doc := wordDoc{List: list, Word: strings.ToLower(strings.TrimSpace(w)), Added: time.Now()}
		_, err := coll.UpdateOne(ctx,
			bson.M{"list": doc.List, "word": doc.Word},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to add %q to %s: %w", doc.Word, list, err)
		}
	}

	return nil
}

func (s *Storage) RemoveWord(ctx context.Context, list, word string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	res, err := s.coll().DeleteOne(ctx, bson.M{"list": list, "word": strings.ToLower(word)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrWordNotFound
	}

	return nil
}

func (s *Storage) Clear(ctx context.Context, list string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	_, err := s.coll().DeleteMany(ctx, bson.M{"list": list})
	return err
}

// createIndex makes (list, word) unique so concurrent upserts cannot duplicate a word.
func (s *Storage) createIndex(ctx context.Context) error {
	_, err := s.coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "list", Value: 1}, {Key: "word", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
