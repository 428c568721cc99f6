package data

import (
	"context"
	"testing"

	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/ids"
)

func TestRoomsCreateAndGet(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	rooms := NewRoomsStore(c.RoomsCollection(), ids.NewGenerator())
	ctx := context.Background()

	id, err := rooms.Create(ctx, RawChatRoom{RoomName: "typescript", Description: "ts talk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := rooms.Get(ctx, RoomKey{RoomName: "typescript"})
	if err != nil {
		t.Fatalf("Get by roomName failed: %v", err)
	}
	if got.ID != id || got.Description != "ts talk" {
		t.Fatalf("Get returned wrong room: %+v", got)
	}

	if got, err = rooms.Get(ctx, RoomKey{ID: id}); err != nil || got.RoomName != "typescript" {
		t.Fatalf("Get by id failed: got=%+v err=%v", got, err)
	}

	if _, err := rooms.Get(ctx, RoomKey{RoomName: "golang"}); !errs.HasCode(err, errs.NotFound) {
		t.Fatalf("expected %s for unknown room, got %v", errs.NotFound, err)
	}
}

func TestRoomsDuplicate(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	rooms := NewRoomsStore(c.RoomsCollection(), ids.NewGenerator())
	ctx := context.Background()

	if _, err := rooms.Create(ctx, RawChatRoom{RoomName: "typescript", Description: "a"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := rooms.Create(ctx, RawChatRoom{RoomName: "typescript", Description: "b"})
	if !errs.HasCode(err, errs.Exists) {
		t.Fatalf("expected %s for duplicate roomName, got %v", errs.Exists, err)
	}
}

func TestRoomsUpdate(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	rooms := NewRoomsStore(c.RoomsCollection(), ids.NewGenerator())
	ctx := context.Background()

	id, err := rooms.Create(ctx, RawChatRoom{RoomName: "typescript", Description: "ts talk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	otherID, err := rooms.Create(ctx, RawChatRoom{RoomName: "golang", Description: "go talk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newDescr := "typescript chatter"
	updated, err := rooms.Update(ctx, id, RoomPatch{Description: &newDescr})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != newDescr || updated.RoomName != "typescript" {
		t.Fatalf("Update returned wrong room: %+v", updated)
	}

	// renaming onto an existing roomName collides
	taken := "typescript"
	if _, err := rooms.Update(ctx, otherID, RoomPatch{RoomName: &taken}); !errs.HasCode(err, errs.Exists) {
		t.Fatalf("expected %s, got %v", errs.Exists, err)
	}
}
