package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PaulBabatuyi/chatstore/internal/chat"
	"github.com/PaulBabatuyi/chatstore/internal/data"
	"github.com/PaulBabatuyi/chatstore/internal/errs"
	"github.com/PaulBabatuyi/chatstore/internal/validate"
)

// dispatch runs a single command against the store and returns its
// result value (nil for commands with no output). All argument shape
// checking happens here and in the validate package; the stores assume
// well-formed values.
func dispatch(ctx context.Context, c *chat.Chat, cmd string, args []string) (any, error) {
	switch cmd {
	case "make-user":
		kv, err := parseArgs(args, "chatName", "firstName", "lastName", "email")
		if err != nil {
			return nil, err
		}
		raw := data.RawUser{
			ChatName:  kv["chatName"],
			FirstName: kv["firstName"],
			LastName:  kv["lastName"],
			Email:     kv["email"],
		}
		if err := validate.Struct(raw); err != nil {
			return nil, err
		}
		return c.MakeUser(ctx, raw)

	case "get-user":
		kv, err := parseArgs(args, "id", "chatName", "email")
		if err != nil {
			return nil, err
		}
		return c.GetUser(ctx, data.UserKey{
			ID: kv["id"], ChatName: kv["chatName"], Email: kv["email"],
		})

	case "update-user":
		kv, err := parseArgs(args, "id", "chatName", "firstName", "lastName", "email")
		if err != nil {
			return nil, err
		}
		id := kv["id"]
		if id == "" {
			return nil, errs.New(errs.Missing, "id is required")
		}
		patch := data.UserPatch{
			ChatName:  optArg(kv, "chatName"),
			FirstName: optArg(kv, "firstName"),
			LastName:  optArg(kv, "lastName"),
			Email:     optArg(kv, "email"),
		}
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		return c.UpdateUser(ctx, id, patch)

	case "make-room":
		kv, err := parseArgs(args, "roomName", "description")
		if err != nil {
			return nil, err
		}
		raw := data.RawChatRoom{RoomName: kv["roomName"], Description: kv["description"]}
		if err := validate.Struct(raw); err != nil {
			return nil, err
		}
		return c.MakeChatRoom(ctx, raw)

	case "get-room":
		kv, err := parseArgs(args, "id", "roomName")
		if err != nil {
			return nil, err
		}
		return c.GetChatRoom(ctx, data.RoomKey{ID: kv["id"], RoomName: kv["roomName"]})

	case "update-room":
		kv, err := parseArgs(args, "id", "roomName", "description")
		if err != nil {
			return nil, err
		}
		id := kv["id"]
		if id == "" {
			return nil, errs.New(errs.Missing, "id is required")
		}
		patch := data.RoomPatch{
			RoomName:    optArg(kv, "roomName"),
			Description: optArg(kv, "description"),
		}
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		return c.UpdateChatRoom(ctx, id, patch)

	case "make-chat-msg":
		kv, err := parseArgs(args, "roomName", "chatName", "msg")
		if err != nil {
			return nil, err
		}
		raw := data.RawChatMsg{
			RoomName: kv["roomName"], ChatName: kv["chatName"], Msg: kv["msg"],
		}
		if err := validate.Struct(raw); err != nil {
			return nil, err
		}
		return c.MakeChatMsg(ctx, raw)

	case "find-chat-msgs":
		kv, err := parseArgs(args,
			"id", "roomName", "chatName", "words", "earliest", "latest", "offset", "limit")
		if err != nil {
			return nil, err
		}
		params, err := buildFindParams(kv)
		if err != nil {
			return nil, err
		}
		if err := validate.Struct(params); err != nil {
			return nil, err
		}
		return c.FindChatMsgs(ctx, params)

	case "load-data":
		kv, err := parseArgs(args, "path")
		if err != nil {
			return nil, err
		}
		if kv["path"] == "" {
			return nil, errs.New(errs.Missing, "path is required")
		}
		return loadData(ctx, c, kv["path"])

	case "clear":
		if _, err := parseArgs(args); err != nil {
			return nil, err
		}
		return nil, c.Clear(ctx)

	default:
		return nil, errs.New(errs.BadVal, "unknown command %q", cmd)
	}
}

// parseArgs splits KEY=VAL arguments into a map, rejecting malformed
// pairs and keys outside the command's allowed set.
func parseArgs(args []string, allowed ...string) (map[string]string, error) {
	kv := map[string]string{}
	for _, arg := range args {
		k, v, found := strings.Cut(arg, "=")
		if !found || k == "" {
			return nil, errs.New(errs.BadVal, "bad argument %q; expected KEY=VAL", arg)
		}
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			return nil, errs.New(errs.BadVal, "unknown argument %q", k)
		}
		kv[k] = v
	}
	return kv, nil
}

// optArg returns a pointer for patch fields: nil when the key was not
// supplied, so the store leaves the field untouched.
func optArg(kv map[string]string, key string) *string {
	if v, ok := kv[key]; ok {
		return &v
	}
	return nil
}

func buildFindParams(kv map[string]string) (data.FindParams, error) {
	params := data.FindParams{
		ID:       kv["id"],
		RoomName: kv["roomName"],
		ChatName: kv["chatName"],
		Words:    kv["words"],
	}

	var err error
	if v := kv["earliest"]; v != "" {
		if params.Earliest, err = time.Parse(time.RFC3339, v); err != nil {
			return params, errs.New(errs.BadVal, "earliest %q is not an RFC 3339 time", v)
		}
	}
	if v := kv["latest"]; v != "" {
		if params.Latest, err = time.Parse(time.RFC3339, v); err != nil {
			return params, errs.New(errs.BadVal, "latest %q is not an RFC 3339 time", v)
		}
	}
	if v := kv["offset"]; v != "" {
		if params.Offset, err = strconv.ParseInt(v, 10, 64); err != nil || params.Offset < 0 {
			return params, errs.New(errs.BadVal, "offset %q is not a non-negative integer", v)
		}
	}
	if v := kv["limit"]; v != "" {
		if params.Limit, err = strconv.ParseInt(v, 10, 64); err != nil || params.Limit < 1 {
			return params, errs.New(errs.BadVal, "limit %q is not a positive integer", v)
		}
	}
	return params, nil
}

// fixture is the shape of a load-data JSON file.
type fixture struct {
	Users     []data.RawUser     `json:"users"`
	ChatRooms []data.RawChatRoom `json:"chatRooms"`
	ChatMsgs  []data.RawChatMsg  `json:"chatMsgs"`
}

// loadData bulk-creates the entities from a JSON fixture file, users
// and rooms before the messages that reference them. Returns per-kind
// counts of created entities.
func loadData(ctx context.Context, c *chat.Chat, path string) (any, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.BadVal, err, "cannot read %q", path)
	}
	var fix fixture
	if err := json.Unmarshal(buf, &fix); err != nil {
		return nil, errs.Wrap(errs.BadVal, err, "cannot parse %q", path)
	}

	for i, u := range fix.Users {
		if err := validate.Struct(u); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		if _, err := c.MakeUser(ctx, u); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	for i, r := range fix.ChatRooms {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("chatRooms[%d]: %w", i, err)
		}
		if _, err := c.MakeChatRoom(ctx, r); err != nil {
			return nil, fmt.Errorf("chatRooms[%d]: %w", i, err)
		}
	}
	for i, m := range fix.ChatMsgs {
		if err := validate.Struct(m); err != nil {
			return nil, fmt.Errorf("chatMsgs[%d]: %w", i, err)
		}
		if _, err := c.MakeChatMsg(ctx, m); err != nil {
			return nil, fmt.Errorf("chatMsgs[%d]: %w", i, err)
		}
	}

	return map[string]int{
		"users":     len(fix.Users),
		"chatRooms": len(fix.ChatRooms),
		"chatMsgs":  len(fix.ChatMsgs),
	}, nil
}
