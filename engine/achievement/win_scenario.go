package achievement

import (
	"slices"

	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

// WinScenario unlocks when Scenario is completed with one of Oaths (empty
// means any oath) and, if TimeOfDay is set, with every time-of-day of the
// crusade equal to it.
type WinScenario struct {
	Scenario  string
	Oaths     []string
	TimeOfDay string
}

// NewWinScenario creates a win-scenario rule.
func NewWinScenario(scenario string, oaths []string, timeOfDay string) *WinScenario {
	return &WinScenario{Scenario: scenario, Oaths: oaths, TimeOfDay: timeOfDay}
}

func (r *WinScenario) Kind() string { return types.KindWinScenario }

// OnNewSession is a no-op. Scenarios completed in saves older than the
// achievement are not retroactively counted.
func (r *WinScenario) OnNewSession(*types.Session) {}

func (r *WinScenario) ShouldUnlock(s *types.Session) bool {
	if !state.IsCompleted(s) {
		return false
	}
	if state.ScenarioID(s) != r.Scenario {
		return false
	}
	if len(r.Oaths) > 0 && !slices.Contains(r.Oaths, s.Player.Oath) {
		return false
	}
	if r.TimeOfDay != "" {
		for _, tod := range s.Config.TimeOfDays {
			if tod != r.TimeOfDay {
				return false
			}
		}
	}
	return true
}

func (r *WinScenario) ClearState() {}
