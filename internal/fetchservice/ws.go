package fetchservice

import (
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/websocket"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

const welcomeMessage = "fetch-service: client connected"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket serves the / route: registers a Watch, pushes reports as
// they arrive, and answers the peer's control frames, per §4.6 and §6.
func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("fetchservice: websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	watcher := messages.NewBlockMsgQueue()
	defer watcher.Close()
	s.upstream.Send(messages.NewWatch(messages.WatchMsg{Sender: watcher}))

	if err := conn.WriteMessage(websocket.TextMessage, []byte(welcomeMessage)); err != nil {
		log.Warn("fetchservice: websocket welcome frame failed", "err", err)
		return
	}

	peerFrames := make(chan wsFrame, 16)
	go readPeerFrames(conn, peerFrames)

	for {
		select {
		case <-r.Context().Done():
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case frame, ok := <-peerFrames:
			if !ok {
				return
			}
			if frame.err != nil {
				return
			}
			switch frame.messageType {
			case websocket.PingMessage:
				if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
					return
				}
			case websocket.CloseMessage:
				_ = conn.WriteMessage(websocket.CloseMessage, frame.data)
				return
			}

		case <-watcher.NotifyChan():
			for {
				msg, ok := watcher.TryRecv()
				if !ok {
					break
				}
				if msg.Kind != messages.KindReport {
					continue
				}
				if err := conn.WriteMessage(websocket.BinaryMessage, encodeReport(&msg.Report)); err != nil {
					log.Warn("fetchservice: websocket write failed", "err", err)
					return
				}
			}
		}
	}
}

type wsFrame struct {
	messageType int
	data        []byte
	err         error
}

// readPeerFrames pumps conn.ReadMessage into out until it errors (peer
// closed, network failure) and then closes out.
func readPeerFrames(conn *websocket.Conn, out chan<- wsFrame) {
	defer close(out)
	for {
		mt, data, err := conn.ReadMessage()
		out <- wsFrame{messageType: mt, data: data, err: err}
		if err != nil {
			return
		}
	}
}
