package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notesapi/config"
	"notesapi/model"
	"notesapi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ NoteRepository = (*NotesRepo)(nil)

// noteDocument is the BSON shape of a note; the domain model keeps the ID as a hex string.
type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Category  string             `bson:"category"`
	Published bool               `bson:"published"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *noteDocument) toModel() *model.Note {
	return &model.Note{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		Published: d.Published,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type NotesRepo struct {
	MongoCollection *mongo.Collection
	opTimeout       time.Duration
}

func GetNotesRepo(client *mongo.Client, cfg config.DatabaseConfig) *NotesRepo {
	return NewNotesRepo(client.Database(cfg.DatabaseName).Collection(cfg.NoteCollection), cfg.OpTimeout)
}

func NewNotesRepo(coll *mongo.Collection, opTimeout time.Duration) *NotesRepo {
	return &NotesRepo{
		MongoCollection: coll,
		opTimeout:       opTimeout,
	}
}

func (r *NotesRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

func (r *NotesRepo) track(operation string) func(err error) {
	timer := utils.TrackDBOperation(operation, r.MongoCollection.Name())
	return func(err error) {
		timer.ObserveDuration()
		if err != nil && !errors.Is(err, ErrNoteNotFound) {
			utils.TrackDBError(operation, r.MongoCollection.Name())
		}
	}
}

// Create inserts the note under a freshly generated ObjectID.
func (r *NotesRepo) Create(ctx context.Context, note *model.Note) (created *model.Note, err error) {
	done := r.track("insert")
	defer func() { done(err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		Published: note.Published,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	if _, err := r.MongoCollection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return doc.toModel(), nil
}

// Get retrieves a specific note
func (r *NotesRepo) Get(ctx context.Context, id string) (note *model.Note, err error) {
	done := r.track("find_one")
	defer func() { done(err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoteNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc noteDocument
	if err := r.MongoCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note %s: %w", id, err)
	}

	return doc.toModel(), nil
}

// List returns one page of notes in creation order
func (r *NotesRepo) List(ctx context.Context, skip, limit int64) (notes []*model.Note, err error) {
	done := r.track("find")
	defer func() { done(err) }()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []noteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes = make([]*model.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, docs[i].toModel())
	}
	return notes, nil
}

// Update sets only the fields present in the patch and returns the note as stored afterwards.
func (r *NotesRepo) Update(ctx context.Context, id string, patch model.NotePatch, updatedAt time.Time) (note *model.Note, err error) {
	done := r.track("find_one_and_update")
	defer func() { done(err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoteNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": updatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc noteDocument
	err = r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNoteNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update note %s: %w", id, err)
	}

	return doc.toModel(), nil
}

// Delete deletes a specific note
func (r *NotesRepo) Delete(ctx context.Context, id string) (err error) {
	done := r.track("delete")
	defer func() { done(err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoteNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}

	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	return nil
}
