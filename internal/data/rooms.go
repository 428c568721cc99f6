package data

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/ids"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// RoomsStore performs chat-room DB operations.
type RoomsStore struct {
	// coll is the "chatRooms" collection; its unique index on roomName
	// enforces room uniqueness
	coll *mongo.Collection
	gen  *ids.Generator
}

// NewRoomsStore returns a RoomsStore using the provided collection and
// id generator.
func NewRoomsStore(coll *mongo.Collection, gen *ids.Generator) *RoomsStore {
	return &RoomsStore{coll: coll, gen: gen}
}

// Create inserts a new chat room and returns its generated id. A
// roomName collision surfaces as E_EXISTS via the unique index.
func (r *RoomsStore) Create(ctx context.Context, raw RawChatRoom) (string, error) {
	now := time.Now().UTC()
	room := &ChatRoom{
		ID:             r.gen.Next("room"),
		RoomName:       raw.RoomName,
		Description:    raw.Description,
		CreationTime:   now,
		LastUpdateTime: now,
	}

	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.New(errs.Exists,
				"chat room with roomName %q already exists", raw.RoomName)
		}
		return "", errs.Wrap(errs.DB, err, "failed to insert chat room")
	}

	return room.ID, nil
}

// Get returns the chat room selected by key (id or roomName).
func (r *RoomsStore) Get(ctx context.Context, key RoomKey) (*ChatRoom, error) {
	var query bson.M
	switch {
	case key.ID != "":
		query = bson.M{"_id": key.ID}
	case key.RoomName != "":
		query = bson.M{"roomName": key.RoomName}
	default:
		return nil, errs.New(errs.Missing, "room key requires id or roomName")
	}

	var room ChatRoom
	if err := r.coll.FindOne(ctx, query).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.New(errs.NotFound, "chat room %v not found", query)
		}
		return nil, errs.Wrap(errs.DB, err, "failed to query chat room")
	}
	return &room, nil
}

// Update merges the non-nil fields of patch into the room identified by
// id and returns the updated record. Same atomic-merge contract as
// UsersStore.Update.
func (r *RoomsStore) Update(ctx context.Context, id string, patch RoomPatch) (*ChatRoom, error) {
	set := bson.M{"lastUpdateTime": time.Now().UTC()}
	if patch.RoomName != nil {
		set["roomName"] = *patch.RoomName
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var room ChatRoom
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.New(errs.NotFound, "chat room %q not found", id)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.New(errs.Exists,
				"update of chat room %q collides with an existing roomName", id)
		}
		return nil, errs.Wrap(errs.DB, err, "failed to update chat room %q", id)
	}
	return &room, nil
}
