package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/websocket"
)

// wsPingInterval is WS_PING_INTERVAL from §5, the reference client's
// keepalive cadence.
const wsPingInterval = 15 * time.Second

// issueAndCollect connects to addr's WebSocket root and reads the welcome
// frame, then GETs path with query params against addr's HTTP side and
// collects count reports, appending each to csvPath as it arrives.
func issueAndCollect(ctx context.Context, addr, path string, query url.Values, count uint64, csvPath string) error {
	httpURL := (&url.URL{Scheme: "http", Host: addr, Path: path, RawQuery: query.Encode()}).String()

	wsURL := (&url.URL{Scheme: "ws", Host: addr, Path: "/"}).String()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("testclient: dial websocket: %w", err)
	}
	defer conn.Close()

	mt, welcome, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("testclient: read welcome frame: %w", err)
	}
	if mt != websocket.TextMessage {
		return fmt.Errorf("testclient: expected text welcome frame, got type %d", mt)
	}
	log.Info("testclient: connected", "welcome", string(welcome))

	resp, err := http.Get(httpURL)
	if err != nil {
		return fmt.Errorf("testclient: issue request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("testclient: request failed with status %d", resp.StatusCode)
	}

	stopPing := startKeepalive(conn)
	defer stopPing()

	var received uint64
	for received < count {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("testclient: read report frame: %w", err)
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		rep, err := decodeReport(data)
		if err != nil {
			return fmt.Errorf("testclient: decode report: %w", err)
		}
		log.Info("testclient: received report", "block_number", rep.BlockNumber, "success", rep.Success)
		if csvPath != "" {
			if err := rep.AppendToCSV(csvPath); err != nil {
				return fmt.Errorf("testclient: append to csv: %w", err)
			}
		}
		received++
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

// startKeepalive pings conn every wsPingInterval until the returned stop
// function is called.
func startKeepalive(conn *websocket.Conn) (stop func()) {
	ticker := time.NewTicker(wsPingInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
