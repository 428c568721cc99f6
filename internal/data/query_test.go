package data

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// buildMsgQuery is pure bson construction, so it is testable without a
// running MongoDB.

func TestBuildMsgQueryRoomOnly(t *testing.T) {
	query, ok := buildMsgQuery("room1_ab", "", FindParams{RoomName: "typescript"})
	if !ok {
		t.Fatalf("expected satisfiable query")
	}
	if query["roomId"] != "room1_ab" {
		t.Errorf("roomId = %v, want room1_ab", query["roomId"])
	}
	if _, present := query["userId"]; present {
		t.Errorf("did not expect userId clause: %v", query)
	}
	if _, present := query["creationTime"]; present {
		t.Errorf("did not expect creationTime clause: %v", query)
	}
}

func TestBuildMsgQueryAllFilters(t *testing.T) {
	earliest := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	params := FindParams{
		ID:       "msg9_cd",
		RoomName: "typescript",
		ChatName: "joe",
		Words:    "hello day",
		Earliest: earliest,
		Latest:   latest,
	}

	query, ok := buildMsgQuery("room1_ab", "user2_ef", params)
	if !ok {
		t.Fatalf("expected satisfiable query")
	}
	if query["userId"] != "user2_ef" {
		t.Errorf("userId = %v, want user2_ef", query["userId"])
	}
	if query["_id"] != "msg9_cd" {
		t.Errorf("_id = %v, want msg9_cd", query["_id"])
	}

	bounds, boundsOK := query["creationTime"].(bson.M)
	if !boundsOK {
		t.Fatalf("expected creationTime bounds, got %v", query["creationTime"])
	}
	if bounds["$gte"] != earliest || bounds["$lte"] != latest {
		t.Errorf("bounds = %v, want $gte=%v $lte=%v", bounds, earliest, latest)
	}

	ors, orsOK := query["$or"].(bson.A)
	if !orsOK || len(ors) != 2 {
		t.Errorf("expected 2 word alternatives, got %v", query["$or"])
	}
}

func TestBuildMsgQueryEarliestOnly(t *testing.T) {
	earliest := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query, _ := buildMsgQuery("r", "", FindParams{RoomName: "x", Earliest: earliest})
	bounds := query["creationTime"].(bson.M)
	if bounds["$gte"] != earliest {
		t.Errorf("$gte = %v, want %v", bounds["$gte"], earliest)
	}
	if _, present := bounds["$lte"]; present {
		t.Errorf("did not expect $lte: %v", bounds)
	}
}

func TestBuildMsgQueryUnsatisfiableWords(t *testing.T) {
	if _, ok := buildMsgQuery("r", "", FindParams{RoomName: "x", Words: "?!"}); ok {
		t.Fatalf("expected token-free words to be unsatisfiable")
	}
}

func TestMsgSortOrder(t *testing.T) {
	want := bson.D{
		{Key: "creationTime", Value: -1},
		{Key: "msg", Value: 1},
		{Key: "_id", Value: 1},
	}
	if len(msgSort) != len(want) {
		t.Fatalf("sort has %d keys, want %d", len(msgSort), len(want))
	}
	for i := range want {
		if msgSort[i] != want[i] {
			t.Errorf("sort key %d = %v, want %v", i, msgSort[i], want[i])
		}
	}
}
