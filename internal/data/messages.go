package data

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/ids"
	"github.com/PaulBabatuyi/chatstore/internal/search"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MsgsStore provides chat-message DB operations. Messages are
// append-only: there is no update or delete.
type MsgsStore struct {
	// coll is the "chatMsgs" collection
	coll *mongo.Collection
	gen  *ids.Generator

	// users and rooms resolve display names to ids on the write path
	// and ids back to current display names on the read path
	users *UsersStore
	rooms *RoomsStore
}

// NewMsgsStore returns a MsgsStore using the given collection, id
// generator and entity stores.
func NewMsgsStore(coll *mongo.Collection, gen *ids.Generator, users *UsersStore, rooms *RoomsStore) *MsgsStore {
	return &MsgsStore{coll: coll, gen: gen, users: users, rooms: rooms}
}

// Create resolves the message's roomName and chatName to entity ids,
// stamps the creation time, and inserts the record. Only the ids are
// stored, so later renames of the room or user show up automatically
// when the message is read back. Returns the new message id, or
// E_NOT_FOUND when the room or user does not exist.
//
// The two resolutions and the insert are not one transaction: a
// concurrent mutation of the referenced entities can slip between them.
// Accepted gap, inherited from the single-process model.
func (m *MsgsStore) Create(ctx context.Context, raw RawChatMsg) (string, error) {
	room, err := m.rooms.Get(ctx, RoomKey{RoomName: raw.RoomName})
	if err != nil {
		return "", err
	}
	user, err := m.users.Get(ctx, UserKey{ChatName: raw.ChatName})
	if err != nil {
		return "", err
	}

	rec := &MsgRecord{
		ID:           m.gen.Next("msg"),
		RoomID:       room.ID,
		UserID:       user.ID,
		Msg:          raw.Msg,
		CreationTime: time.Now().UTC(),
	}

	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return "", errs.Wrap(errs.DB, err, "failed to insert chat message")
	}
	return rec.ID, nil
}

// msgSort orders find results: newest creationTime first, ties broken
// by msg text ascending, then by id ascending so the order is fully
// deterministic.
var msgSort = bson.D{
	{Key: "creationTime", Value: -1},
	{Key: "msg", Value: 1},
	{Key: "_id", Value: 1},
}

// Find returns the denormalized messages matching params, sorted and
// paginated. The room (and the chatName filter, when given) must
// resolve even if no message would match; an unknown name is
// E_NOT_FOUND, never an empty success.
func (m *MsgsStore) Find(ctx context.Context, params FindParams) ([]ChatMsg, error) {
	room, err := m.rooms.Get(ctx, RoomKey{RoomName: params.RoomName})
	if err != nil {
		return nil, err
	}

	var userID string
	if params.ChatName != "" {
		user, err := m.users.Get(ctx, UserKey{ChatName: params.ChatName})
		if err != nil {
			return nil, err
		}
		userID = user.ID
	}

	query, satisfiable := buildMsgQuery(room.ID, userID, params)
	if !satisfiable {
		// the words parameter held no word tokens, so nothing can match
		return []ChatMsg{}, nil
	}

	limit := params.Limit
	if limit == 0 {
		limit = PageSize
	}
	opts := options.Find().
		SetSort(msgSort).
		SetSkip(params.Offset).
		SetLimit(limit)

	cursor, err := m.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errs.Wrap(errs.DB, err, "failed to query chat messages")
	}
	defer cursor.Close(ctx)

	var recs []MsgRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, errs.Wrap(errs.DB, err, "failed to decode chat messages")
	}

	// Denormalize with fresh lookups; never from a cached copy, so a
	// rename of the room or user is reflected even for old messages.
	msgs := make([]ChatMsg, 0, len(recs))
	for _, rec := range recs {
		user, err := m.users.Get(ctx, UserKey{ID: rec.UserID})
		if err != nil {
			if errs.HasCode(err, errs.NotFound) {
				// referenced user was removed out from under the
				// message (see Create); skip rather than fail the page
				continue
			}
			return nil, err
		}
		room, err := m.rooms.Get(ctx, RoomKey{ID: rec.RoomID})
		if err != nil {
			if errs.HasCode(err, errs.NotFound) {
				continue
			}
			return nil, err
		}
		msgs = append(msgs, ChatMsg{
			ID:           rec.ID,
			RoomName:     room.RoomName,
			ChatName:     user.ChatName,
			Msg:          rec.Msg,
			CreationTime: rec.CreationTime,
		})
	}
	return msgs, nil
}

// buildMsgQuery assembles the MongoDB filter for a message search from
// the resolved entity ids and the remaining params. The second return
// is false when the filter cannot match anything (words with no
// tokens); callers should short-circuit to an empty result.
func buildMsgQuery(roomID, userID string, params FindParams) (bson.M, bool) {
	query := bson.M{"roomId": roomID}

	if userID != "" {
		query["userId"] = userID
	}
	if params.ID != "" {
		query["_id"] = params.ID
	}

	// inclusive bounds on creationTime
	if !params.Earliest.IsZero() || !params.Latest.IsZero() {
		bounds := bson.M{}
		if !params.Earliest.IsZero() {
			bounds["$gte"] = params.Earliest
		}
		if !params.Latest.IsZero() {
			bounds["$lte"] = params.Latest
		}
		query["creationTime"] = bounds
	}

	if params.Words != "" {
		clause := search.WordsClause("msg", params.Words)
		if clause == nil {
			return nil, false
		}
		query["$or"] = clause["$or"]
	}

	return query, true
}
