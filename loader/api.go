package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/achievecore/types"
)

// registerAPI registers the content constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start_scenario = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Card "id" { name = "...", type = "relic" }
	L.SetGlobal("Card", curried(L, func(id string, tbl *lua.LTable) {
		coll.cards = append(coll.cards, rawDef{id: id, table: tbl})
	}))

	// Scenario "id" { name = "...", tutorial = false, time_of_days = { ... } }
	L.SetGlobal("Scenario", curried(L, func(id string, tbl *lua.LTable) {
		coll.scenarios = append(coll.scenarios, rawDef{id: id, table: tbl})
	}))

	// Oath "id" { name = "..." }
	L.SetGlobal("Oath", curried(L, func(id string, tbl *lua.LTable) {
		coll.oaths = append(coll.oaths, rawDef{id: id, table: tbl})
	}))

	// AcquiredCard "id" { platform_id = "...", card_types = { ... }, cards = { ... } }
	L.SetGlobal("AcquiredCard", curried(L, func(id string, tbl *lua.LTable) {
		coll.achievements = append(coll.achievements, rawAchievement{id: id, kind: types.KindAcquiredCard, table: tbl})
	}))

	// WinScenario "id" { platform_id = "...", scenario = "...", oaths = { ... }, time_of_day = "..." }
	L.SetGlobal("WinScenario", curried(L, func(id string, tbl *lua.LTable) {
		coll.achievements = append(coll.achievements, rawAchievement{id: id, kind: types.KindWinScenario, table: tbl})
	}))
}

// curried builds a constructor called as Name "id" { ... }: the first call
// takes the ID and returns a function that takes the table.
func curried(L *lua.LState, collect func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			collect(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}
