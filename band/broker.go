package band

import (
	"sync"

	"github.com/vsariola/jamband"
)

type (
	// Command is a message from the player to a musician. It is one of
	// TeachSong, PlayTick or Shutdown.
	Command interface {
		command()
	}

	// TeachSong asks a musician to get ready to play the song with the given
	// ID, from its first section.
	TeachSong struct {
		SongID string
	}

	// PlayTick asks a musician to play one sixteenth of a song. Transport is
	// the state of the clock on that tick; being a value, it is the
	// musician's own copy.
	PlayTick struct {
		SongID    string
		Transport jamband.Transport
	}

	// Shutdown asks a musician to stop, release its output and return.
	Shutdown struct{}

	// Mailbox is an unbounded FIFO queue of commands, with one producer (the
	// player) and one consumer (a musician). Push never blocks. Once the
	// consumer has closed the mailbox, pushed commands are dropped, so a
	// musician that has quit never stalls the player.
	Mailbox struct {
		mu     sync.Mutex
		cond   *sync.Cond
		queue  []Command
		closed bool
	}

	// Broker holds one mailbox per musician and broadcasts commands to them
	// in the order the mailboxes were added. The order of the commands within
	// one mailbox is the order they were broadcast in; there is no ordering
	// across mailboxes.
	Broker struct {
		mailboxes []*Mailbox
	}
)

func (TeachSong) command() {}
func (PlayTick) command()  {}
func (Shutdown) command()  {}

func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Push appends a command to the queue. It returns false if the mailbox was
// closed and the command was dropped.
func (m *Mailbox) Push(c Command) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.queue = append(m.queue, c)
	m.cond.Signal()
	return true
}

// Receive blocks until there is a command in the queue and pops it. A closed
// mailbox always returns Shutdown.
func (m *Mailbox) Receive() Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return Shutdown{}
	}
	c := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return c
}

// Close drops all queued commands and makes further pushes no-ops. Only the
// consumer should close a mailbox.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.queue = nil
	m.cond.Broadcast()
}

// Len returns the number of commands waiting in the queue.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func NewBroker() *Broker {
	return &Broker{}
}

// Add creates a new mailbox and returns it for the consumer.
func (b *Broker) Add() *Mailbox {
	m := NewMailbox()
	b.mailboxes = append(b.mailboxes, m)
	return m
}

// Len returns the number of mailboxes.
func (b *Broker) Len() int {
	return len(b.mailboxes)
}

// Broadcast pushes the command to every mailbox and returns how many of them
// accepted it.
func (b *Broker) Broadcast(c Command) (delivered int) {
	for _, m := range b.mailboxes {
		if m.Push(c) {
			delivered++
		}
	}
	return delivered
}

func (b *Broker) TeachSong(songID string) int {
	return b.Broadcast(TeachSong{SongID: songID})
}

func (b *Broker) PlayTick(songID string, t jamband.Transport) int {
	return b.Broadcast(PlayTick{SongID: songID, Transport: t})
}

func (b *Broker) Shutdown() int {
	return b.Broadcast(Shutdown{})
}
