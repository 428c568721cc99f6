package data

import "time"

// User maps to the users collection. Ids are the store's own opaque
// strings stored as _id; chatName and email are covered by unique
// indexes (see db.CreateIndexes).
type User struct {
	ID             string    `bson:"_id" json:"id"`
	ChatName       string    `bson:"chatName" json:"chatName"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	Email          string    `bson:"email" json:"email"`
	CreationTime   time.Time `bson:"creationTime" json:"creationTime"`
	LastUpdateTime time.Time `bson:"lastUpdateTime" json:"lastUpdateTime"`
}

// ChatRoom maps to the chatRooms collection; roomName is unique.
type ChatRoom struct {
	ID             string    `bson:"_id" json:"id"`
	RoomName       string    `bson:"roomName" json:"roomName"`
	Description    string    `bson:"description" json:"description"`
	CreationTime   time.Time `bson:"creationTime" json:"creationTime"`
	LastUpdateTime time.Time `bson:"lastUpdateTime" json:"lastUpdateTime"`
}

// MsgRecord is the stored form of a chat message. It deliberately holds
// only the room and user ids, never copies of roomName/chatName, so a
// later rename of either entity is reflected whenever the message is
// read back. Messages are append-only and never updated.
type MsgRecord struct {
	ID           string    `bson:"_id"`
	RoomID       string    `bson:"roomId"`
	UserID       string    `bson:"userId"`
	Msg          string    `bson:"msg"`
	CreationTime time.Time `bson:"creationTime"`
}

// ChatMsg is the denormalized view returned by queries: roomName and
// chatName are resolved fresh from the referenced entities at read time.
type ChatMsg struct {
	ID           string    `json:"id"`
	RoomName     string    `json:"roomName"`
	ChatName     string    `json:"chatName"`
	Msg          string    `json:"msg"`
	CreationTime time.Time `json:"creationTime"`
}

// RawUser carries the caller-supplied fields of a new user; id and
// timestamps are generated by the store. Validation tags are consumed
// by the validate package before the store is called.
type RawUser struct {
	ChatName  string `json:"chatName" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// RawChatRoom carries the caller-supplied fields of a new chat room.
type RawChatRoom struct {
	RoomName    string `json:"roomName" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// RawChatMsg carries the caller-supplied fields of a new message. Room
// and user are identified by their display names and resolved to ids
// at creation time.
type RawChatMsg struct {
	RoomName string `json:"roomName" validate:"required"`
	ChatName string `json:"chatName" validate:"required"`
	Msg      string `json:"msg" validate:"required"`
}

// UserPatch is a partial update of a user: nil fields are left
// untouched. An all-nil patch still refreshes lastUpdateTime.
type UserPatch struct {
	ChatName  *string `json:"chatName,omitempty" validate:"omitempty,min=1"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// RoomPatch is a partial update of a chat room.
type RoomPatch struct {
	RoomName    *string `json:"roomName,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// UserKey selects a user by exactly one of its unique fields; the first
// non-empty field wins, checked in declaration order.
type UserKey struct {
	ID       string `json:"id,omitempty"`
	ChatName string `json:"chatName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// RoomKey selects a chat room by id or roomName.
type RoomKey struct {
	ID       string `json:"id,omitempty"`
	RoomName string `json:"roomName,omitempty"`
}

// PageSize is the default number of results per page when a find does
// not specify a limit.
const PageSize = 5

// FindParams describes a message search. RoomName is required; every
// other field narrows the result. Earliest and Latest are inclusive
// bounds on creationTime. Words keeps a message when any of its word
// tokens matches a whole word of the message text, case-insensitively.
type FindParams struct {
	ID       string    `json:"id,omitempty"`
	RoomName string    `json:"roomName" validate:"required"`
	ChatName string    `json:"chatName,omitempty"`
	Words    string    `json:"words,omitempty"`
	Earliest time.Time `json:"earliest,omitempty"`
	Latest   time.Time `json:"latest,omitempty"`
	Offset   int64     `json:"offset,omitempty" validate:"omitempty,min=0"`
	Limit    int64     `json:"limit,omitempty" validate:"omitempty,min=1"`
}
