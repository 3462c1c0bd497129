package platform

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ConsoleChannel renders channel sends to a writer. It stands in for a real
// platform channel in the reference binary and in local development.
type ConsoleChannel struct {
	id string

	mu sync.Mutex
	w  io.Writer
}

// NewConsoleChannel creates a console-backed channel with the given ID.
func NewConsoleChannel(id string, w io.Writer) *ConsoleChannel {
	return &ConsoleChannel{id: id, w: w}
}

func (c *ConsoleChannel) ID() string { return c.id }

func (c *ConsoleChannel) Send(ctx context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "#%s %s%s\n", c.id, msg.Content, describeExtras(msg))
	return err
}

// ConsoleUser renders direct messages to a writer.
type ConsoleUser struct {
	id string

	mu sync.Mutex
	w  io.Writer
}

// NewConsoleUser creates a console-backed user with the given ID.
func NewConsoleUser(id string, w io.Writer) *ConsoleUser {
	return &ConsoleUser{id: id, w: w}
}

func (u *ConsoleUser) ID() string { return u.id }

func (u *ConsoleUser) Send(ctx context.Context, msg Message) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, err := fmt.Fprintf(u.w, "@%s %s%s\n", u.id, msg.Content, describeExtras(msg))
	return err
}

func describeExtras(msg Message) string {
	var extra string
	if msg.Embed != nil {
		extra += " [embed]"
	}
	for _, f := range msg.Files {
		extra += fmt.Sprintf(" [file %s]", f.Name())
	}
	return extra
}
