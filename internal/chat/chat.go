// Package chat exposes the message store as one API surface. Every
// method is a thin delegation to the underlying stores; all expected
// failures come back as coded errors (see the errs package), never as
// panics.
package chat

import (
	"context"

	"github.com/PaulBabatuyi/chatstore/internal/data"
	"github.com/PaulBabatuyi/chatstore/internal/db"
	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/ids"
)

// Chat is the facade over the users, rooms and messages stores.
type Chat struct {
	client *db.Client
	gen    *ids.Generator
	users  *data.UsersStore
	rooms  *data.RoomsStore
	msgs   *data.MsgsStore
}

// New connects to the database at dbURL, ensures the unique indexes
// exist, and wires the stores around a shared id generator.
func New(ctx context.Context, dbURL string) (*Chat, error) {
	client, err := db.New(ctx, dbURL)
	if err != nil {
		return nil, errs.Wrap(errs.DB, err, "failed to open chat store")
	}
	if err := client.CreateIndexes(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, errs.Wrap(errs.DB, err, "failed to create indexes")
	}

	gen := ids.NewGenerator()
	users := data.NewUsersStore(client.UsersCollection(), gen)
	rooms := data.NewRoomsStore(client.RoomsCollection(), gen)
	msgs := data.NewMsgsStore(client.MsgsCollection(), gen, users, rooms)

	return &Chat{client: client, gen: gen, users: users, rooms: rooms, msgs: msgs}, nil
}

// MakeUser creates a user and returns its new id.
func (c *Chat) MakeUser(ctx context.Context, raw data.RawUser) (string, error) {
	return c.users.Create(ctx, raw)
}

// GetUser returns the user selected by key.
func (c *Chat) GetUser(ctx context.Context, key data.UserKey) (*data.User, error) {
	return c.users.Get(ctx, key)
}

// UpdateUser merges patch into the identified user and returns the
// updated record.
func (c *Chat) UpdateUser(ctx context.Context, id string, patch data.UserPatch) (*data.User, error) {
	return c.users.Update(ctx, id, patch)
}

// MakeChatRoom creates a chat room and returns its new id.
func (c *Chat) MakeChatRoom(ctx context.Context, raw data.RawChatRoom) (string, error) {
	return c.rooms.Create(ctx, raw)
}

// GetChatRoom returns the chat room selected by key.
func (c *Chat) GetChatRoom(ctx context.Context, key data.RoomKey) (*data.ChatRoom, error) {
	return c.rooms.Get(ctx, key)
}

// UpdateChatRoom merges patch into the identified room and returns the
// updated record.
func (c *Chat) UpdateChatRoom(ctx context.Context, id string, patch data.RoomPatch) (*data.ChatRoom, error) {
	return c.rooms.Update(ctx, id, patch)
}

// MakeChatMsg creates a message and returns its new id.
func (c *Chat) MakeChatMsg(ctx context.Context, raw data.RawChatMsg) (string, error) {
	return c.msgs.Create(ctx, raw)
}

// FindChatMsgs returns the denormalized messages matching params.
func (c *Chat) FindChatMsgs(ctx context.Context, params data.FindParams) ([]data.ChatMsg, error) {
	return c.msgs.Find(ctx, params)
}

// Clear deletes all entities and resets the id generator. Test and
// bootstrap use only; do not expose it unprotected.
func (c *Chat) Clear(ctx context.Context) error {
	if err := c.client.Clear(ctx); err != nil {
		return errs.Wrap(errs.DB, err, "failed to clear chat store")
	}
	c.gen.Reset()
	return nil
}

// Close releases the database connection. Calls on the instance after
// Close are undefined.
func (c *Chat) Close(ctx context.Context) error {
	if err := c.client.Close(ctx); err != nil {
		return errs.Wrap(errs.DB, err, "failed to close chat store")
	}
	return nil
}
