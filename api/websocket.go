package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lookbusy1344/gcode-parser/parser"
)

const (
	// WebSocket configuration
	writeWait      = 10 * time.Second
	maxMessageSize = DefaultMaxSourceSize // matches the parse endpoint source limit
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		// In production, this should check against allowed origins
		return true
	},
}

// wsRequest represents a client message on the parse socket
type wsRequest struct {
	Type   string `json:"type"` // Should be "parse"
	Source string `json:"source"`
}

// handleWebSocket upgrades the connection and serves streaming parse
// requests: one "line" or "diagnostic" event per parsed element, terminated
// by a "done" event
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("WebSocket close error: %v", err)
		}
	}()

	// Same limit as the parse endpoint source limit
	conn.SetReadLimit(s.maxSourceSize)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		if req.Type != "parse" {
			if err := writeEvent(conn, Event{Type: "error", Message: "unknown request type"}); err != nil {
				return
			}
			continue
		}

		if err := streamParse(conn, req.Source); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

// streamParse pulls lines out of the parser one at a time, forwarding each
// line and every diagnostic as its own event
func streamParse(conn *websocket.Conn, source string) error {
	diags := &parser.DiagnosticList{}
	p := parser.New(source, diags)

	sent := 0
	lineCount := 0
	for {
		line, ok := p.NextLine()

		// Forward diagnostics recorded since the previous line
		for ; sent < diags.Len(); sent++ {
			info := ToDiagnosticInfo(diags.Diagnostics[sent])
			if err := writeEvent(conn, Event{Type: "diagnostic", Diagnostic: &info}); err != nil {
				return err
			}
		}

		if !ok {
			break
		}

		lineCount++
		info := ToLineInfo(&line)
		if err := writeEvent(conn, Event{Type: "line", Line: &info}); err != nil {
			return err
		}
	}

	return writeEvent(conn, Event{
		Type:        "done",
		Lines:       lineCount,
		Diagnostics: diags.Len(),
	})
}

// writeEvent writes one event with a write deadline applied
func writeEvent(conn *websocket.Conn, event Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}
