package models

// Point is a world-space position
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Layout is a generated map as sent to clients and written by the CLI
type Layout struct {
	ID          string         `json:"id" yaml:"id"`
	Catalog     string         `json:"catalog" yaml:"catalog"`
	Target      int            `json:"target" yaml:"target"`
	Seed        *int64         `json:"seed,omitempty" yaml:"seed,omitempty"` // requested seed, nil when random
	AttemptSeed int64          `json:"attempt_seed" yaml:"attempt_seed"`     // replays the final attempt as a fixed seed
	Success     bool           `json:"success" yaml:"success"`
	Attempts    int            `json:"attempts" yaml:"attempts"`
	Iterations  int            `json:"iterations" yaml:"iterations"`
	Modules     []PlacedModule `json:"modules" yaml:"modules"`
	Connections []Connection   `json:"connections" yaml:"connections"`
	OpenDoors   int            `json:"open_doors" yaml:"open_doors"`
	ASCII       string         `json:"ascii,omitempty" yaml:"ascii,omitempty"`
}

// PlacedModule is one module instance in placement order
type PlacedModule struct {
	Handle   int          `json:"handle" yaml:"handle"`
	Template string       `json:"template" yaml:"template"`
	Position Point        `json:"position" yaml:"position"`
	Width    float64      `json:"width" yaml:"width"`
	Height   float64      `json:"height" yaml:"height"`
	Doors    []PlacedDoor `json:"doors" yaml:"doors"`
}

// PlacedDoor is a door on a placed module
type PlacedDoor struct {
	Index        int    `json:"index" yaml:"index"`
	Side         string `json:"side" yaml:"side"`
	Position     Point  `json:"position" yaml:"position"`
	Connected    bool   `json:"connected" yaml:"connected"`
	EntranceExit bool   `json:"entrance_exit,omitempty" yaml:"entrance_exit,omitempty"`
}

// DoorRef points at a door by module handle and door index
type DoorRef struct {
	Module int `json:"module" yaml:"module"`
	Door   int `json:"door" yaml:"door"`
}

// Connection is a pair of connected doors
type Connection struct {
	A DoorRef `json:"a" yaml:"a"`
	B DoorRef `json:"b" yaml:"b"`
}

// GenerateRequest asks for a single layout. A nil Seed draws a random one.
type GenerateRequest struct {
	Catalog     string `json:"catalog"`
	Target      int    `json:"target,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
	ASCII       bool   `json:"ascii,omitempty"`
}

// BatchRequest asks for many layouts at once.
// Seeds are used when given, otherwise Count random seeds are drawn.
type BatchRequest struct {
	Catalog     string  `json:"catalog"`
	Target      int     `json:"target,omitempty"`
	Seeds       []int64 `json:"seeds,omitempty"`
	Count       int     `json:"count,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
	Workers     int     `json:"workers,omitempty"`
}

// BatchResponse summarises a batch run
type BatchResponse struct {
	ID        string   `json:"id"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Layouts   []Layout `json:"layouts"`
}

// LayoutEvent is a generation event as streamed over the websocket
type LayoutEvent struct {
	Kind     string `json:"kind"`
	State    string `json:"state"`
	Attempt  int    `json:"attempt"`
	Pass     int    `json:"pass"`
	Seed     int64  `json:"seed,omitempty"`
	Template string `json:"template,omitempty"`
	Position *Point `json:"position,omitempty"`
	Spawned  int    `json:"spawned"`
	Open     int    `json:"open"`
	Reason   string `json:"reason,omitempty"`
}

// StreamMessage is one websocket frame: an event, the final layout or an error
type StreamMessage struct {
	Type   string       `json:"type"` // event, layout, error
	Event  *LayoutEvent `json:"event,omitempty"`
	Layout *Layout      `json:"layout,omitempty"`
	Error  string       `json:"error,omitempty"`
}
