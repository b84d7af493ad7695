package protocol

// TimeMsg is broadcast after every tick.
type TimeMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Day             int     `json:"day"`
	Hour            int     `json:"hour"`
	Minute          int     `json:"minute"`
	Second          float64 `json:"second"`
	TimeString      string  `json:"time_string"`
	SpeedScale      int     `json:"speed_scale"`
	Paused          bool    `json:"paused"`
	Sleeping        bool    `json:"sleeping"`
}

// StateMsg carries entity summaries; broadcast at a lower cadence than TIME.
type StateMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	Player          EntityState   `json:"player"`
	NPCs            []EntityState `json:"npcs"`
}

type EntityState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Activity string  `json:"activity"`
	Hunger   float64 `json:"hunger"`
	Thirst   float64 `json:"thirst"`
	Health   float64 `json:"health"`
	Dead     bool    `json:"dead,omitempty"`
}

// CmdMsg is a control command from the UI.
type CmdMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	Cmd             string `json:"cmd"`
	Speed           int    `json:"speed,omitempty"`
}

// AckMsg answers a CmdMsg.
type AckMsg struct {
	Type    string `json:"type"`
	Cmd     string `json:"cmd"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// EventMsg surfaces simulation events to the UI (currently deaths and
// level-ups).
type EventMsg struct {
	Type       string `json:"type"`
	Event      string `json:"event"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}
