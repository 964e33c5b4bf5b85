// Package engine implements the turn-based game core: it owns the world
// clone and session state, and exposes the Initialize/Start/Step/Cleanup
// lifecycle that drivers (terminal UI, scripted playback, structured
// callers) consume uniformly.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkarlsen/fablecore/engine/save"
	"github.com/mkarlsen/fablecore/engine/session"
	"github.com/mkarlsen/fablecore/types"
)

// ErrGameOver is returned by Step once a terminal result has been produced.
// Drivers must call Initialize to start a new playthrough.
var ErrGameOver = errors.New("game already over")

// ErrNotInitialized is returned when Start or Step is called before
// Initialize (or after Cleanup).
var ErrNotInitialized = errors.New("engine not initialized")

// Game is one engine instance. It is single-threaded and request/response:
// every Step completes all mutation before returning, and the engine never
// calls back into its driver. Two instances may run in parallel because each
// owns an exclusive clone of the template map.
type Game struct {
	template *types.GameMap
	world    *types.GameMap
	sess     *session.Session
	log      *zap.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger attaches a structured logger for per-step trace output.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates an engine for the given map template. The template is never
// mutated; Initialize clones it.
func New(template *types.GameMap, opts ...Option) *Game {
	g := &Game{template: template, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Initialize allocates fresh session state from the template map. Calling it
// mid-game discards the current playthrough; it is a reset, not a resume.
func (g *Game) Initialize() {
	g.world = g.template.Clone()
	g.sess = session.New(g.world)
	g.log.Debug("session initialized",
		zap.String("session", g.sess.ID),
		zap.String("map", g.world.Title),
		zap.String("start_room", g.world.StartRoomID))
}

// Start returns the initial rendered state plus the schema of all available
// actions, so structured callers can construct valid payloads.
func (g *Game) Start() (*types.StateView, error) {
	if g.sess == nil {
		return nil, ErrNotInitialized
	}
	room, err := g.sess.Room(g.world)
	if err != nil {
		return nil, err
	}
	text := g.world.Title
	if g.world.Description != "" {
		text += "\n\n" + g.world.Description
	}
	text += "\n\n" + g.renderRoom(room)
	return &types.StateView{Feedback: text, Actions: types.ActionSchema()}, nil
}

// Step processes one action. It returns a continuable state or a terminal
// result; once a terminal result has been returned, further calls fail with
// ErrGameOver. An unknown action name is a safe no-op state response, never
// an error.
func (g *Game) Step(action types.Action) (*types.StepResult, error) {
	if g.sess == nil {
		return nil, ErrNotInitialized
	}
	if g.sess.Terminal {
		return nil, ErrGameOver
	}

	room, err := g.sess.Room(g.world)
	if err != nil {
		return nil, err
	}

	var result *types.StepResult
	switch action.Name {
	case types.ActionLook:
		result = g.actionLook(room, action.Params[types.ParamTarget])
	case types.ActionMove:
		result = g.actionMove(room, action.Params[types.ParamDirection])
	case types.ActionTake:
		result = g.actionTake(room, action.Params[types.ParamItem])
	case types.ActionUse:
		result = g.actionUse(room, action.Params[types.ParamItem], action.Params[types.ParamTarget])
	default:
		result = g.state(fmt.Sprintf("Action %q not recognized.", action.Name))
	}

	g.trace(action, result)
	return result, nil
}

// Cleanup releases the playthrough. The core holds no external resources;
// after Cleanup the engine must be re-initialized before use.
func (g *Game) Cleanup() {
	g.world = nil
	g.sess = nil
	_ = g.log.Sync()
}

// Session exposes the current session for serialization and status display.
func (g *Game) Session() *session.Session { return g.sess }

// World exposes the session's world clone.
func (g *Game) World() *types.GameMap { return g.world }

// Save captures the current playthrough as a self-contained record.
func (g *Game) Save() ([]byte, error) {
	if g.sess == nil {
		return nil, ErrNotInitialized
	}
	return save.Serialize(g.sess, g.world)
}

// Load replaces the current playthrough with one restored from save data.
// The record is validated before any state is touched; on error the running
// game is left intact.
func (g *Game) Load(data []byte) error {
	rec, err := save.Decode(data)
	if err != nil {
		return err
	}
	sess, world, err := save.Restore(rec)
	if err != nil {
		return err
	}
	g.sess = sess
	g.world = world
	g.log.Debug("session restored",
		zap.String("session", sess.ID),
		zap.String("room", sess.CurrentRoomID),
		zap.Int("score", sess.Score))
	return nil
}

func (g *Game) trace(action types.Action, result *types.StepResult) {
	if ce := g.log.Check(zap.DebugLevel, "step"); ce != nil {
		fields := []zap.Field{
			zap.String("session", g.sess.ID),
			zap.String("action", action.Name),
			zap.Any("params", action.Params),
			zap.String("room", g.sess.CurrentRoomID),
			zap.Int("score", g.sess.Score),
			zap.Bool("terminal", result.Result != nil),
		}
		ce.Write(fields...)
	}
}

// state wraps feedback text in a continuable step result.
func (g *Game) state(feedback string) *types.StepResult {
	return &types.StepResult{State: &types.StateView{
		Feedback: feedback,
		Actions:  types.ActionSchema(),
	}}
}

// terminal marks the session finished and produces the terminal result.
// Win/loss is carried in the narrative text and the Won flag; both outcomes
// share one shape.
func (g *Game) terminal(won bool, finalText string) *types.StepResult {
	g.sess.Terminal = true
	g.sess.Won = won
	return &types.StepResult{Result: &types.TerminalResult{
		FinalText: finalText,
		Score:     g.sess.Score,
		Inventory: g.sess.InventoryIDs(),
		Won:       won,
		GameOver:  true,
	}}
}
