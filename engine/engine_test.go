package engine

import (
	"strings"
	"testing"

	"github.com/mkarlsen/fablecore/types"
)

// testTemplate is a three-room fixture exercising every rule kind: a trap on
// the hall's north exit, a prerequisite win item in the vault, and a use
// effect that rewrites the mural.
func testTemplate() *types.GameMap {
	lamp := &types.Item{
		Entity:   types.Entity{ID: "lamp", Name: "Oil Lamp", Description: "A battered oil lamp.", Tags: []string{"light"}},
		Takeable: true,
		Points:   5,
	}
	statue := &types.Item{
		Entity: types.Entity{ID: "statue", Name: "Stone Statue", Description: "Far too heavy."},
	}
	crown := &types.Item{
		Entity:   types.Entity{ID: "crown", Name: "Iron Crown", Description: "Cold to look at."},
		Takeable: true,
	}

	return &types.GameMap{
		Title:       "The Test Vault",
		Description: "A vault built for proving things.",
		StartRoomID: "hall",
		Rooms: map[string]*types.Room{
			"hall": {
				ID: "hall", Name: "Entrance Hall", Description: "Dust and echoes.",
				Items: map[string]*types.Item{"lamp": lamp, "statue": statue},
				Features: map[string]*types.Feature{
					"mural": {Entity: types.Entity{ID: "mural", Name: "Faded Mural", Description: "Too dark to read."}},
				},
				Characters: map[string]*types.Character{
					"keeper": {Entity: types.Entity{ID: "keeper", Name: "Old Keeper", Description: "Waiting."}},
				},
				Exits: map[types.Direction]*types.Exit{
					types.North: {Entity: types.Entity{ID: "hall:north", Name: "dark stair"}, TargetRoomID: "vault"},
					types.East:  {Entity: types.Entity{ID: "hall:east", Name: "side door"}, TargetRoomID: "study"},
				},
			},
			"vault": {
				ID: "vault", Name: "Inner Vault", Description: "The air hums.",
				Items: map[string]*types.Item{"crown": crown},
				Exits: map[types.Direction]*types.Exit{
					types.South: {Entity: types.Entity{ID: "vault:south", Name: "dark stair"}, TargetRoomID: "hall"},
				},
			},
			"study": {
				ID: "study", Name: "Dusty Study", Description: "Shelves and silence.",
				Exits: map[types.Direction]*types.Exit{
					types.West: {Entity: types.Entity{ID: "study:west", Name: "side door"}, TargetRoomID: "hall"},
				},
			},
		},
		Catalog: map[string]*types.Item{"lamp": lamp, "statue": statue, "crown": crown},
		Traps: []types.TrapRule{
			{RoomID: "hall", Direction: types.North, RequiredItemID: "lamp",
				DeathText: "The stair swallows you whole."},
		},
		Takes: map[string]types.TakeRule{
			"crown": {
				ItemID:          "crown",
				RequiredItemIDs: []string{"lamp"},
				DeathText:       "The crown's cold takes you.",
				Win:             true,
				WinText:         "The crown is yours.",
				Points:          50,
				Reason:          "claimed the crown",
			},
		},
		Uses: []types.UseRule{
			{ItemID: "lamp", TargetID: "mural",
				Text:           "Light floods the mural.",
				DescribeID:     "mural",
				NewDescription: "A procession of crowned figures."},
		},
	}
}

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New(testTemplate())
	g.Initialize()
	return g
}

func step(t *testing.T, g *Game, name string, params map[string]string) *types.StepResult {
	t.Helper()
	res, err := g.Step(types.Action{Name: name, Params: params})
	if err != nil {
		t.Fatalf("step %s %v failed: %v", name, params, err)
	}
	return res
}

func mustState(t *testing.T, res *types.StepResult) *types.StateView {
	t.Helper()
	if res.State == nil || res.Result != nil {
		t.Fatalf("expected continuable state, got %+v", res)
	}
	return res.State
}

func mustTerminal(t *testing.T, res *types.StepResult) *types.TerminalResult {
	t.Helper()
	if res.Result == nil || res.State != nil {
		t.Fatalf("expected terminal result, got %+v", res)
	}
	return res.Result
}

func TestStart_BeforeInitialize(t *testing.T) {
	g := New(testTemplate())
	if _, err := g.Start(); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := g.Step(types.Action{Name: types.ActionLook}); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized from Step, got %v", err)
	}
}

func TestStart_RendersIntroAndSchema(t *testing.T) {
	g := newGame(t)
	view, err := g.Start()
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	for _, want := range []string{"The Test Vault", "Entrance Hall", "Oil Lamp", "Old Keeper", "Exits:"} {
		if !strings.Contains(view.Feedback, want) {
			t.Errorf("start feedback missing %q:\n%s", want, view.Feedback)
		}
	}
	if len(view.Actions) != 4 {
		t.Errorf("expected 4 action specs, got %d", len(view.Actions))
	}
}

func TestInitialize_DoesNotMutateTemplate(t *testing.T) {
	template := testTemplate()
	g := New(template)
	g.Initialize()

	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})

	if _, ok := template.Rooms["hall"].Items["lamp"]; !ok {
		t.Errorf("taking an item mutated the template map")
	}
}

func TestLook_Idempotent(t *testing.T) {
	g := newGame(t)
	first := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "room"}))
	second := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "room"}))
	if first.Feedback != second.Feedback {
		t.Errorf("look mutated state:\n%s\nvs\n%s", first.Feedback, second.Feedback)
	}
}

func TestLook_Entity(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "mural"}))
	if !strings.Contains(view.Feedback, "Too dark to read.") {
		t.Errorf("expected mural description, got %q", view.Feedback)
	}
	if !strings.Contains(view.Feedback, "in this room") {
		t.Errorf("expected room provenance, got %q", view.Feedback)
	}
}

func TestLook_InventoryProvenance(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	view := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "lamp"}))
	if !strings.Contains(view.Feedback, "in your inventory") {
		t.Errorf("expected inventory provenance, got %q", view.Feedback)
	}
}

func TestLook_Missing(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "dragon"}))
	if !strings.Contains(view.Feedback, `You don't see any "dragon" here.`) {
		t.Errorf("unexpected miss feedback %q", view.Feedback)
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "west"}))
	if view.Feedback != "You cannot move west." {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
	if g.Session().CurrentRoomID != "hall" {
		t.Errorf("invalid move changed rooms")
	}
}

func TestMove_TrapWithoutItem(t *testing.T) {
	g := newGame(t)
	res := mustTerminal(t, step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"}))
	if res.Won {
		t.Errorf("trap death marked as win")
	}
	if res.FinalText != "The stair swallows you whole." {
		t.Errorf("unexpected final text %q", res.FinalText)
	}
	if g.Session().CurrentRoomID != "hall" {
		t.Errorf("fatal move still changed rooms")
	}
}

func TestMove_TrapBypassedWithItem(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	view := mustState(t, step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"}))
	if !strings.Contains(view.Feedback, "Inner Vault") {
		t.Errorf("expected vault rendering, got %q", view.Feedback)
	}
	if g.Session().CurrentRoomID != "vault" {
		t.Errorf("expected vault, got %q", g.Session().CurrentRoomID)
	}
}

func TestTake_Conservation(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"}))
	if !strings.Contains(view.Feedback, "You take the Oil Lamp.") {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
	if !strings.Contains(view.Feedback, "(+5 points: picked up Oil Lamp)") {
		t.Errorf("expected point annotation, got %q", view.Feedback)
	}
	if _, ok := g.World().Rooms["hall"].Items["lamp"]; ok {
		t.Errorf("taken item still in room")
	}
	if !g.Session().HasItem("lamp") {
		t.Errorf("taken item not in inventory")
	}
}

func TestTake_AlreadyHeld(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	view := mustState(t, step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"}))
	if view.Feedback != "You already have the Oil Lamp." {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
	if g.Session().Score != 5 {
		t.Errorf("retake awarded points twice: %d", g.Session().Score)
	}
}

func TestTake_NotTakeable(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionTake, map[string]string{types.ParamItem: "statue"}))
	if view.Feedback != "You can't take the Stone Statue." {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
}

func TestTake_WinEndsGame(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"})

	res := mustTerminal(t, step(t, g, types.ActionTake, map[string]string{types.ParamItem: "crown"}))
	if !res.Won {
		t.Fatalf("expected win")
	}
	if res.FinalText != "The crown is yours." {
		t.Errorf("unexpected final text %q", res.FinalText)
	}
	if res.Score != 55 {
		t.Errorf("expected score 55 (lamp 5 + crown 50), got %d", res.Score)
	}
	if len(res.Inventory) != 1 || res.Inventory[0] != "lamp" {
		t.Errorf("unexpected final inventory %v", res.Inventory)
	}
}

func TestTake_FatalWithoutPrerequisite(t *testing.T) {
	g := newGame(t)
	// Reach the vault without the lamp by clearing the trap for this test.
	g.World().Traps = nil
	step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"})

	res := mustTerminal(t, step(t, g, types.ActionTake, map[string]string{types.ParamItem: "crown"}))
	if res.Won {
		t.Errorf("fatal take marked as win")
	}
	if res.FinalText != "The crown's cold takes you." {
		t.Errorf("unexpected final text %q", res.FinalText)
	}
	if g.Session().HasItem("crown") {
		t.Errorf("fatal take still transferred the item")
	}
}

func TestUse_MutatesDescriptionPermanently(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	view := mustState(t, step(t, g, types.ActionUse, map[string]string{
		types.ParamItem: "lamp", types.ParamTarget: "mural",
	}))
	if view.Feedback != "Light floods the mural." {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}

	look := mustState(t, step(t, g, types.ActionLook, map[string]string{types.ParamTarget: "mural"}))
	if !strings.Contains(look.Feedback, "A procession of crowned figures.") {
		t.Errorf("description mutation not visible on later look: %q", look.Feedback)
	}
}

func TestUse_RequiresHeldItem(t *testing.T) {
	g := newGame(t)
	view := mustState(t, step(t, g, types.ActionUse, map[string]string{
		types.ParamItem: "lamp", types.ParamTarget: "mural",
	}))
	if !strings.Contains(view.Feedback, `You don't have any "lamp".`) {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
}

func TestUse_NoRuleForPair(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	view := mustState(t, step(t, g, types.ActionUse, map[string]string{
		types.ParamItem: "lamp", types.ParamTarget: "keeper",
	}))
	if !strings.Contains(view.Feedback, "You can't figure out how to use") {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
}

func TestStep_UnknownActionIsNoOp(t *testing.T) {
	g := newGame(t)
	before := g.Session().CurrentRoomID
	view := mustState(t, step(t, g, "dance", nil))
	if !strings.Contains(view.Feedback, `Action "dance" not recognized.`) {
		t.Errorf("unexpected feedback %q", view.Feedback)
	}
	if g.Session().CurrentRoomID != before || g.Session().Score != 0 {
		t.Errorf("unknown action mutated state")
	}
}

func TestStep_AfterTerminal(t *testing.T) {
	g := newGame(t)
	mustTerminal(t, step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"}))

	if _, err := g.Step(types.Action{Name: types.ActionLook}); err != ErrGameOver {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestInitialize_ResetsAfterGameOver(t *testing.T) {
	g := newGame(t)
	mustTerminal(t, step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"}))

	g.Initialize()
	view := mustState(t, step(t, g, types.ActionLook, nil))
	if !strings.Contains(view.Feedback, "Entrance Hall") {
		t.Errorf("re-initialized game not back at start: %q", view.Feedback)
	}
	if g.Session().Score != 0 {
		t.Errorf("re-initialize kept old score %d", g.Session().Score)
	}
}

func TestCleanup_RequiresReinitialize(t *testing.T) {
	g := newGame(t)
	g.Cleanup()
	if _, err := g.Step(types.Action{Name: types.ActionLook}); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized after cleanup, got %v", err)
	}
}

func TestSaveLoad_ResumesPlaythrough(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})
	step(t, g, types.ActionUse, map[string]string{
		types.ParamItem: "lamp", types.ParamTarget: "mural",
	})
	step(t, g, types.ActionMove, map[string]string{types.ParamDirection: "north"})

	data, err := g.Save()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	restored := New(testTemplate())
	if err := restored.Load(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if restored.Session().CurrentRoomID != "vault" {
		t.Errorf("restored in %q, expected vault", restored.Session().CurrentRoomID)
	}
	if !restored.Session().HasItem("lamp") {
		t.Errorf("restored inventory missing lamp")
	}
	if restored.Session().Score != 5 {
		t.Errorf("restored score %d, expected 5", restored.Session().Score)
	}

	// The mural mutation must survive: move back and look.
	step(t, restored, types.ActionMove, map[string]string{types.ParamDirection: "south"})
	look := mustState(t, step(t, restored, types.ActionLook, map[string]string{types.ParamTarget: "mural"}))
	if !strings.Contains(look.Feedback, "A procession of crowned figures.") {
		t.Errorf("description mutation lost across save/load: %q", look.Feedback)
	}
}

func TestLoad_RejectsCorruptData(t *testing.T) {
	g := newGame(t)
	step(t, g, types.ActionTake, map[string]string{types.ParamItem: "lamp"})

	if err := g.Load([]byte("{broken")); err == nil {
		t.Fatalf("expected load error")
	}
	// The running game stays intact after a failed load.
	if !g.Session().HasItem("lamp") {
		t.Errorf("failed load clobbered the running session")
	}
}
