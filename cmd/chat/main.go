package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/PaulBabatuyi/chatstore/internal/chat"
	"github.com/PaulBabatuyi/chatstore/internal/errs"
)

const usageText = `usage: chat DB_URL COMMAND [KEY=VAL...]

DB_URL may be omitted by setting CHAT_DB_URL in the environment.

commands:
  make-user      chatName= firstName= lastName= email=
  get-user       id= | chatName= | email=
  update-user    id= [chatName=] [firstName=] [lastName=] [email=]
  make-room      roomName= description=
  get-room       id= | roomName=
  update-room    id= [roomName=] [description=]
  make-chat-msg  roomName= chatName= msg=
  find-chat-msgs roomName= [id=] [chatName=] [words=] [earliest=] [latest=]
                 [offset=] [limit=]   (times in RFC 3339)
  load-data      path=   (JSON file with users, chatRooms and chatMsgs)
  clear
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
	os.Exit(1)
}

func main() {
	args := os.Args[1:]

	// allow the DB URL to come from the environment so scripts don't
	// have to repeat it on every invocation
	dbURL := os.Getenv("CHAT_DB_URL")
	if len(args) > 0 && dbURL == "" {
		dbURL, args = args[0], args[1:]
	}
	if dbURL == "" || len(args) == 0 {
		usage()
	}
	cmd, rest := args[0], args[1:]

	ctx := context.Background()
	c, err := chat.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("failed to open chat store: %v", err)
	}
	defer func() { _ = c.Close(ctx) }()

	val, err := dispatch(ctx, c, cmd, rest)
	if err != nil {
		outErrs(err)
	}
	if val != nil {
		out, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
		fmt.Println(string(out))
	}
}

// outErrs prints every error with its code, one per line, and exits
// non-zero. Validation may report several field errors at once; none
// are discarded.
func outErrs(err error) {
	var list errs.List
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	} else {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(1)
}
