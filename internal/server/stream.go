package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Command is a clock control message sent by a stream client.
//
//	{"type":"play"} {"type":"pause"} {"type":"toggle"}
//	{"type":"speed","value":72} {"type":"skip","value":-30}
//	{"type":"reset"}
type Command struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

func (s *Server) apply(cmd Command) error {
	switch cmd.Type {
	case "play":
		s.clock.SetPlaying(true)
	case "pause":
		s.clock.SetPlaying(false)
	case "toggle":
		s.clock.Toggle()
	case "speed":
		if !(cmd.Value > 0) {
			return fmt.Errorf("%w: speed %g", ErrBadCommand, cmd.Value)
		}
		s.clock.SetSpeed(cmd.Value)
	case "skip":
		s.clock.Skip(cmd.Value)
	case "reset":
		s.clock.Reset(time.Now())
	default:
		return fmt.Errorf("%w: %q", ErrBadCommand, cmd.Type)
	}
	return nil
}

// handleStream upgrades to a websocket and sends a Positions frame at
// the configured rate. Incoming messages are clock commands.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordRequest("stream", http.StatusBadRequest)
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.metrics.RecordRequest("stream", http.StatusSwitchingProtocols)
	s.metrics.ClientConnected()
	defer s.metrics.ClientDisconnected()
	defer conn.Close()
	s.logger.Debug("stream client connected", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go s.readCommands(conn, done)

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.FPS))
	defer ticker.Stop()
	for {
		if err := s.sendFrame(conn); err != nil {
			s.logger.Debug("stream closed", "remote", r.RemoteAddr, "err", err)
			return
		}
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) sendFrame(conn *websocket.Conn) error {
	frame := s.positions(s.clock.State(), s.opts.Scale)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		return err
	}
	s.metrics.FrameSent()
	return nil
}

// readCommands applies commands until the client goes away. Bad
// commands are logged and skipped.
func (s *Server) readCommands(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.logger.Warn("bad stream message", "err", err)
			continue
		}
		if err := s.apply(cmd); err != nil {
			s.logger.Warn("rejected command", "err", err)
		}
	}
}
