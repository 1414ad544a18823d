package webd

import (
	"encoding/json"
	"log"
	"log/slog"

	"github.com/olahol/melody"

	"github.com/navixracing/telemd/types/telemetry"
)

type websocketAction string

var websocketActionUpload websocketAction = "upload"

type broadcast struct {
	Action  websocketAction    `json:"action"`
	Session *telemetry.Session `json:"session"`
}

// initMelody sets up the websocket handler.
func (s *WebDaemon) initMelody() {
	s.melodyInstance = melody.New()

	s.melodyInstance.HandleConnect(func(sess *melody.Session) {
		log.Println("[websocket] connected", sess.Request.RemoteAddr)
	})

	// Right now don't care about incoming messages from clients. Log and drop.
	s.melodyInstance.HandleMessage(loggingHandler)

	s.melodyInstance.HandleDisconnect(func(sess *melody.Session) {
		log.Println("[websocket] disconnected", sess.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(sess *melody.Session, e error) {
		log.Println("[websocket] error", e, sess.Request.RemoteAddr)
	})

	// Broadcast freshly uploaded sessions to all connected clients.
	// The session here is the ingest service's parse result, already
	// validated and stored.
	uploads := make(chan *telemetry.Session)
	uploadSub := s.feedUploaded.Subscribe(uploads)
	go func() {
		for {
			select {
			case sess := <-uploads:
				b, err := json.Marshal(broadcast{
					Action:  websocketActionUpload,
					Session: sess,
				})
				if err != nil {
					slog.Error("Failed to marshal upload event", "error", err)
					continue
				}
				if err := s.melodyInstance.Broadcast(b); err != nil {
					slog.Warn("Failed to broadcast upload event", "error", err)
				}
			case err := <-uploadSub.Err():
				slog.Error("Failed to subscribe to upload feed", "error", err)
				return
			}
		}
	}()
}

// on request
func loggingHandler(s *melody.Session, msg []byte) {
	log.Println("[websocket] message", string(msg))
}
