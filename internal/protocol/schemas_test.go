package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"wyrnlands.game/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, raw []byte) {
		t.Helper()
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("unmarshal sample: %v", err)
		}
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	timeSchema := compile("time.schema.json")
	cmdSchema := compile("cmd.schema.json")
	stateSchema := compile("state.schema.json")

	timeMsg, _ := json.Marshal(protocol.TimeMsg{
		Type: protocol.TypeTime, ProtocolVersion: protocol.Version,
		Day: 3, Hour: 7, Minute: 5, Second: 12.5,
		TimeString: "Day 3, 07:05:12", SpeedScale: 2,
	})
	validate(timeSchema, timeMsg)

	cmdMsg, _ := json.Marshal(protocol.CmdMsg{Type: protocol.TypeCmd, Cmd: protocol.CmdSetSpeed, Speed: 4})
	validate(cmdSchema, cmdMsg)

	stateMsg, _ := json.Marshal(protocol.StateMsg{
		Type: protocol.TypeState, ProtocolVersion: protocol.Version,
		Player: protocol.EntityState{ID: "1", Name: "Aldric", X: 2, Y: 3, Activity: "IDLE", Hunger: 90, Thirst: 85, Health: 100},
		NPCs: []protocol.EntityState{
			{ID: "n1", Name: "Bera", X: 5, Y: 5, Activity: "WORKING", Hunger: 80, Thirst: 70, Health: 100},
		},
	})
	validate(stateSchema, stateMsg)
}

func TestDecodeBase(t *testing.T) {
	base, err := protocol.DecodeBase([]byte(`{"type":"CMD","cmd":"pause"}`))
	if err != nil || base.Type != protocol.TypeCmd {
		t.Fatalf("decode base: %v %+v", err, base)
	}
}
