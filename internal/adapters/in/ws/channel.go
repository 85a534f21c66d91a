package ws

import (
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

const (
	messageAuthenticated = "authenticated"
	messageOrderUpdate   = "orderUpdate"
	messageAssignment    = "assignment"
	messageError         = "error"
)

// Channel is the outbound side of a session.
type Channel interface {
	Send(msg any) error
	Close() error
}

type typedMessage struct {
	Type string `json:"type"`
}

type assignmentMessage struct {
	Type     string   `json:"type"`
	OrderIDs []string `json:"orderIds"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// peer serializes writes to one websocket connection.
type peer struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	encoder      *json.Encoder
	writeTimeout time.Duration
}

func newPeer(conn *websocket.Conn, writeTimeout time.Duration) *peer {
	return &peer{
		conn:         conn,
		encoder:      json.NewEncoder(conn),
		writeTimeout: writeTimeout,
	}
}

func (p *peer) Send(msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writeTimeout > 0 {
		_ = p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	}
	return p.encoder.Encode(msg)
}

func (p *peer) Close() error {
	return p.conn.Close()
}
