// Package data provides DB models and stores.
package data

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/ids"
	"github.com/PaulBabatuyi/chatstore/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersStore performs user DB operations.
type UsersStore struct {
	// coll is the "users" collection; its unique indexes on chatName
	// and email are what enforces user uniqueness
	coll *mongo.Collection
	gen  *ids.Generator
}

// NewUsersStore returns a UsersStore using the provided collection and
// id generator.
func NewUsersStore(coll *mongo.Collection, gen *ids.Generator) *UsersStore {
	return &UsersStore{coll: coll, gen: gen}
}

// Create inserts a new user and returns its generated id. A chatName or
// email collision surfaces as E_EXISTS; the check is the unique index's
// atomic insert, never a read-then-write here.
func (u *UsersStore) Create(ctx context.Context, raw RawUser) (string, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             u.gen.Next("user"),
		ChatName:       raw.ChatName,
		FirstName:      raw.FirstName,
		LastName:       raw.LastName,
		Email:          normalize.Email(raw.Email),
		CreationTime:   now,
		LastUpdateTime: now,
	}

	if _, err := u.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.New(errs.Exists,
				"user with chatName %q or email %q already exists",
				raw.ChatName, raw.Email)
		}
		return "", errs.Wrap(errs.DB, err, "failed to insert user")
	}

	return user.ID, nil
}

// Get returns the user selected by key (id, chatName or email).
func (u *UsersStore) Get(ctx context.Context, key UserKey) (*User, error) {
	var query bson.M
	switch {
	case key.ID != "":
		query = bson.M{"_id": key.ID}
	case key.ChatName != "":
		query = bson.M{"chatName": key.ChatName}
	case key.Email != "":
		query = bson.M{"email": normalize.Email(key.Email)}
	default:
		return nil, errs.New(errs.Missing, "user key requires id, chatName or email")
	}

	var user User
	if err := u.coll.FindOne(ctx, query).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.New(errs.NotFound, "user %v not found", query)
		}
		return nil, errs.Wrap(errs.DB, err, "failed to query user")
	}
	return &user, nil
}

// Update merges the non-nil fields of patch into the user identified by
// id and returns the updated record. The merge is a single atomic
// FindOneAndUpdate; lastUpdateTime is refreshed even for an empty
// patch. An unknown id yields E_NOT_FOUND; a patch colliding with
// another user's chatName or email yields E_EXISTS.
func (u *UsersStore) Update(ctx context.Context, id string, patch UserPatch) (*User, error) {
	set := bson.M{"lastUpdateTime": time.Now().UTC()}
	if patch.ChatName != nil {
		set["chatName"] = *patch.ChatName
	}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = normalize.Email(*patch.Email)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := u.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.New(errs.NotFound, "user %q not found", id)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.New(errs.Exists,
				"update of user %q collides with an existing chatName or email", id)
		}
		return nil, errs.Wrap(errs.DB, err, "failed to update user %q", id)
	}
	return &user, nil
}
