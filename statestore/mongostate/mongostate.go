// Package mongostate provides a MongoDB-backed state.StateStore for
// deployments that want durable persistence with document-level
// querying instead of Redis's flat keyspace. One document is stored per
// (scope, key) pair.
package mongostate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentcore/core/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store implements state.StateStore on top of a *mongo.Collection. The
// caller is responsible for creating the collection (and, ideally, an
// index on "scope") and for closing the owning client.
type Store struct {
	collection *mongo.Collection
}

// New wraps an existing MongoDB collection.
func New(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// document is the on-disk representation of one state value. _id
// combines scope and key so (scope, key) pairs are unique by
// construction without a compound index.
type document struct {
	ID    string `bson:"_id"`
	Scope string `bson:"scope"`
	Key   string `bson:"key"`
	Value []byte `bson:"value"`
}

func docID(scope state.Scope, key string) string {
	return scope.String() + "\x00" + key
}

func (s *Store) Read(ctx context.Context, scope state.Scope, key string) (state.Value, error) {
	var doc document
	err := s.collection.FindOne(ctx, bson.M{"_id": docID(scope, key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostate: read %s: %w", key, err)
	}
	return state.Value(doc.Value), nil
}

func (s *Store) Write(ctx context.Context, scope state.Scope, key string, value state.Value) error {
	doc := document{ID: docID(scope, key), Scope: scope.String(), Key: key, Value: []byte(value)}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("mongostate: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope state.Scope, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": docID(scope, key)})
	if err != nil {
		return fmt.Errorf("mongostate: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, scope state.Scope, prefix string) ([]string, error) {
	filter := bson.M{"scope": scope.String()}
	if prefix != "" {
		filter["key"] = bson.M{"$regex": "^" + escapeRegex(prefix)}
	}
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"key": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongostate: list %s: %w", prefix, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongostate: list decode: %w", err)
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Key)
	}
	return out, nil
}

// Search matches query against a document's key or value, case
// insensitive, using MongoDB's regex operator. It never returns an
// error for an empty result set, only for a failed query.
func (s *Store) Search(ctx context.Context, scope state.Scope, query string, limit int) ([]state.SearchResult, error) {
	if query == "" || limit <= 0 {
		return []state.SearchResult{}, nil
	}

	escaped := escapeRegex(query)
	regex := bson.M{"$regex": escaped, "$options": "i"}
	filter := bson.M{
		"scope": scope.String(),
		"$or": []bson.M{
			{"key": regex},
			{"value": regex},
		},
	}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongostate: search: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongostate: search decode: %w", err)
	}

	var results []state.SearchResult
	for _, d := range docs {
		text := string(d.Value)
		score := 0.0
		if strings.Contains(strings.ToLower(d.Key), strings.ToLower(query)) {
			score += 0.5
		}
		if strings.Contains(strings.ToLower(text), strings.ToLower(query)) {
			score += 0.5
		}
		snippet := text
		if len(snippet) > 80 {
			snippet = snippet[:80]
		}
		results = append(results, state.SearchResult{Key: d.Key, Score: score, Snippet: &snippet})
	}

	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && less(results[j], results[j-1]); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func less(a, b state.SearchResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Key < b.Key
}

// escapeRegex escapes characters with special meaning in MongoDB's
// regex operator so a prefix or query containing them is matched
// literally.
func escapeRegex(s string) string {
	special := []string{"\\", ".", "+", "*", "?", "^", "$", "(", ")", "[", "]", "{", "}", "|"}
	result := s
	for _, char := range special {
		result = strings.ReplaceAll(result, char, "\\"+char)
	}
	return result
}

var _ state.StateStore = (*Store)(nil)
