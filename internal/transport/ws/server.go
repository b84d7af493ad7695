// Package ws serves the simulation to the browser UI: TIME frames every tick,
// STATE frames at a lower cadence, and control commands back in.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wyrnlands.game/internal/protocol"
	"wyrnlands.game/internal/sim/engine"
)

// stateEveryNTicks throttles full STATE frames; TIME goes out every tick.
const stateEveryNTicks = 4

type Server struct {
	engine *engine.Engine
	log    *log.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	ticks   uint64
}

type client struct {
	out chan []byte
}

func NewServer(e *engine.Engine, logger *log.Logger) *Server {
	return &Server{
		engine: e,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: map[*client]struct{}{},
	}
}

// Broadcast fans one tick out to every client. Called from the engine's tick
// path, so it never blocks: a slow client drops frames.
func (s *Server) Broadcast(snap engine.Snapshot) {
	s.mu.Lock()
	s.ticks++
	sendState := s.ticks%stateEveryNTicks == 0
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	if len(clients) == 0 {
		return
	}

	frames := [][]byte{marshalTime(snap)}
	if sendState {
		frames = append(frames, marshalState(snap))
	}
	for _, c := range clients {
		for _, b := range frames {
			select {
			case c.out <- b:
			default:
			}
		}
	}
}

// BroadcastEvent pushes a simulation event (death, level-up) to every client.
func (s *Server) BroadcastEvent(ev protocol.EventMsg) {
	ev.Type = protocol.TypeEvent
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.out <- b:
		default:
		}
	}
}

func marshalTime(snap engine.Snapshot) []byte {
	b, _ := json.Marshal(protocol.TimeMsg{
		Type:            protocol.TypeTime,
		ProtocolVersion: protocol.Version,
		Day:             snap.Time.Day,
		Hour:            snap.Time.Hour,
		Minute:          snap.Time.Minute,
		Second:          snap.Time.Second,
		TimeString:      snap.TimeString,
		SpeedScale:      snap.SpeedScale,
		Paused:          snap.Paused,
		Sleeping:        snap.Sleeping,
	})
	return b
}

func marshalState(snap engine.Snapshot) []byte {
	msg := protocol.StateMsg{
		Type:            protocol.TypeState,
		ProtocolVersion: protocol.Version,
		Player:          entityState(snap.Player),
		NPCs:            make([]protocol.EntityState, 0, len(snap.NPCs)),
	}
	for _, n := range snap.NPCs {
		msg.NPCs = append(msg.NPCs, entityState(n))
	}
	b, _ := json.Marshal(msg)
	return b
}

func entityState(e engine.EntitySummary) protocol.EntityState {
	return protocol.EntityState{
		ID:       e.ID,
		Name:     e.Name,
		X:        e.X,
		Y:        e.Y,
		Activity: string(e.Activity),
		Hunger:   e.Needs.Hunger,
		Thirst:   e.Needs.Thirst,
		Health:   e.Needs.Health,
		Dead:     e.Dead,
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c := &client{out: make(chan []byte, 256)}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
		}()

		done := make(chan struct{})

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-done:
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						return
					}
				}
			}
		}()
		defer close(done)

		// Send the current snapshot immediately on connect.
		snap := s.engine.Snapshot()
		c.out <- marshalTime(snap)
		c.out <- marshalState(snap)

		// Reader loop: control commands only.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeCmd {
				continue
			}
			var cmd protocol.CmdMsg
			if err := json.Unmarshal(msg, &cmd); err != nil {
				continue
			}
			ack := s.apply(cmd)
			if b, err := json.Marshal(ack); err == nil {
				select {
				case c.out <- b:
				default:
				}
			}
		}
	}
}

func (s *Server) apply(cmd protocol.CmdMsg) protocol.AckMsg {
	ack := protocol.AckMsg{Type: protocol.TypeAck, Cmd: cmd.Cmd, OK: true}
	switch cmd.Cmd {
	case protocol.CmdPause:
		s.engine.Pause()
	case protocol.CmdResume:
		s.engine.Resume()
	case protocol.CmdSetSpeed:
		if cmd.Speed != 1 && cmd.Speed != 2 && cmd.Speed != 4 {
			ack.OK = false
			ack.Message = "speed must be 1, 2 or 4"
			break
		}
		s.engine.SetSpeed(cmd.Speed)
	case protocol.CmdSleep:
		s.engine.StartSleep()
	case protocol.CmdWake:
		s.engine.StopSleep()
	default:
		ack.OK = false
		ack.Message = "unknown command"
	}
	return ack
}
