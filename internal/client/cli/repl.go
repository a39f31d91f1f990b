package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, profile, docs, upload, review, rmdoc, apply, submit, status, logout, reset, exit"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Docs(ctx context.Context) error
	Upload(ctx context.Context) error
	Review(ctx context.Context) error
	RemoveDocument(ctx context.Context) error
	Apply(ctx context.Context) error
	Submit(ctx context.Context) error
	Status(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Khula CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need a session are refused
// while logged out. The loop exits on EOF, on "exit" or "quit", or when ctx
// is cancelled.
//
// Commands prompt for their own input on the same reader, so the loop and
// the handlers never race for buffered stdin.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("khula %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		handler := loggedInCommand(a, cmd)
		if handler == nil {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		_ = handler(ctx)
	}
}

func loggedInCommand(a execIface, cmd string) func(context.Context) error {
	switch cmd {
	case "logout":
		return a.Logout
	case "whoami", "me":
		return a.WhoAmI
	case "profile":
		return a.Profile
	case "docs", "documents":
		return a.Docs
	case "upload":
		return a.Upload
	case "review":
		return a.Review
	case "rmdoc":
		return a.RemoveDocument
	case "apply":
		return a.Apply
	case "submit":
		return a.Submit
	case "status":
		return a.Status
	case "reset":
		return a.Reset
	}
	return nil
}
