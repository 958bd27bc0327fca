// Command hexmatchd serves a single-opponent Hex match over a
// websocket connection: the client plays one side, the engine the
// other, each connection running its own board on its own goroutine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hexmind/hexcore/pkg/engine"
	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/hexmind/hexcore/pkg/search"
	"github.com/seekerror/logw"
)

var (
	addr = flag.String("addr", ":8765", "listen address")
	size = flag.Int("size", 11, "board side length")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// message is the wire protocol: a client sends "move" with row/col,
// the server replies with "state" carrying the engine's answering move
// and the board after it, and "result" once the match ends.
type message struct {
	Type   string `json:"type"`
	Row    int    `json:"row,omitempty"`
	Col    int    `json:"col,omitempty"`
	Side   string `json:"side,omitempty"`
	Board  string `json:"board,omitempty"`
	Winner string `json:"winner,omitempty"`
	Error  string `json:"error,omitempty"`
}

func main() {
	flag.Parse()
	ctx := context.Background()

	http.HandleFunc("/match", func(w http.ResponseWriter, r *http.Request) {
		serveMatch(ctx, w, r)
	})

	logw.Infof(ctx, "hexmatchd listening on %v", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

func serveMatch(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(ctx, "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	matchID := uuid.New().String()
	logw.Infof(ctx, "match %v started", matchID)

	e := engine.New(ctx, "hexmind", *size, search.AlphaBeta{}, engine.WithOptions(engine.Options{
		Depth:         0,
		TTCapacity:    1 << 18,
		Coefficients:  eval.DefaultCoefficients,
		BridgeEnabled: true,
	}))

	send := func(m message) error {
		return conn.WriteJSON(m)
	}

	if err := send(message{Type: "welcome", Side: "A", Board: e.Board().String()}); err != nil {
		return
	}

	for {
		var in message
		if err := conn.ReadJSON(&in); err != nil {
			logw.Infof(ctx, "match %v: connection closed: %v", matchID, err)
			return
		}

		switch in.Type {
		case "move":
			m := hexboard.Move{Row: in.Row, Col: in.Col}
			if err := e.ApplyMove(ctx, m); err != nil {
				_ = send(message{Type: "error", Error: err.Error()})
				continue
			}
			if b := e.Board(); reportIfTerminal(send, b) {
				return
			}

			stop := make(chan struct{})
			timer := time.AfterFunc(10*time.Second, func() { close(stop) })

			reply, _, err := e.Move(ctx, stop)
			timer.Stop()
			if err != nil {
				_ = send(message{Type: "error", Error: err.Error()})
				continue
			}

			b := e.Board()
			_ = send(message{Type: "state", Row: reply.Row, Col: reply.Col, Board: b.String()})
			if reportIfTerminal(send, b) {
				return
			}

		case "resign":
			_ = send(message{Type: "result", Winner: "B"})
			return

		default:
			_ = send(message{Type: "error", Error: fmt.Sprintf("unrecognized message type %q", in.Type)})
		}
	}
}

func reportIfTerminal(send func(message) error, b *hexboard.Board) bool {
	if !b.IsTerminal() {
		return false
	}
	_ = send(message{Type: "result", Winner: b.Winner().String()})
	return true
}
