package types

// Action names accepted by the engine.
const (
	ActionLook = "look"
	ActionMove = "move"
	ActionTake = "take"
	ActionUse  = "use"
)

// Action parameter names.
const (
	ParamDirection = "direction"
	ParamTarget    = "target"
	ParamItem      = "item"
)

// Action is one player turn: an action name plus its parameters. All
// parameters declared by the action's spec are required; structured callers
// must supply complete payloads.
type Action struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

// ParamSpec describes one required action parameter. Enum is non-nil when
// the parameter accepts a closed set of values.
type ParamSpec struct {
	Name  string   `json:"name"`
	Usage string   `json:"usage"`
	Enum  []string `json:"enum,omitempty"`
}

// ActionSpec describes one action and its parameter shape so that structured
// callers can construct valid payloads without hardcoded knowledge.
type ActionSpec struct {
	Name   string      `json:"name"`
	Usage  string      `json:"usage"`
	Params []ParamSpec `json:"params"`
}

// ActionSchema returns the fixed schema of all engine actions.
func ActionSchema() []ActionSpec {
	dirs := make([]string, len(Directions))
	for i, d := range Directions {
		dirs[i] = string(d)
	}
	return []ActionSpec{
		{
			Name:  ActionLook,
			Usage: "examine the room, the exits, or a named thing",
			Params: []ParamSpec{
				{Name: ParamTarget, Usage: `what to look at ("room", "exits", or an entity name)`},
			},
		},
		{
			Name:  ActionMove,
			Usage: "move through an exit",
			Params: []ParamSpec{
				{Name: ParamDirection, Usage: "direction to move", Enum: dirs},
			},
		},
		{
			Name:  ActionTake,
			Usage: "pick up an item in the room",
			Params: []ParamSpec{
				{Name: ParamItem, Usage: "name of the item to take"},
			},
		},
		{
			Name:  ActionUse,
			Usage: "use an inventory item on something",
			Params: []ParamSpec{
				{Name: ParamItem, Usage: "inventory item to use"},
				{Name: ParamTarget, Usage: "what to use it on"},
			},
		},
	}
}

// StateView is the continuable half of a step response: feedback text to
// render plus the currently available actions.
type StateView struct {
	Feedback string       `json:"feedback"`
	Actions  []ActionSpec `json:"actions"`
}

// TerminalResult is the final response once the game has ended. Won is
// advisory; drivers render FinalText either way.
type TerminalResult struct {
	FinalText string   `json:"final_text"`
	Score     int      `json:"score"`
	Inventory []string `json:"inventory"`
	Won       bool     `json:"won"`
	GameOver  bool     `json:"game_over"`
}

// StepResult is the outcome of one engine step: exactly one of State or
// Result is non-nil.
type StepResult struct {
	State  *StateView      `json:"state,omitempty"`
	Result *TerminalResult `json:"result,omitempty"`
}
