// Package protocol defines the JSON messages exchanged with the browser UI
// over the websocket transport.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeTime  = "TIME"
	TypeState = "STATE"
	TypeCmd   = "CMD"
	TypeAck   = "ACK"
	TypeEvent = "EVENT"
)

// Commands accepted in a CMD message.
const (
	CmdPause    = "pause"
	CmdResume   = "resume"
	CmdSetSpeed = "set_speed"
	CmdSleep    = "sleep"
	CmdWake     = "wake"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
