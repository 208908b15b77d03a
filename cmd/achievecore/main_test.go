package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/achievecore/config"
	"github.com/nathoo/achievecore/engine/save"
	"github.com/nathoo/achievecore/engine/state"
	"github.com/nathoo/achievecore/types"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{SaveDir: dir, DBPath: filepath.Join(dir, "progress.db")}

	tests := []struct {
		store string
		check func(save.Store) bool
	}{
		{config.StoreMemory, func(s save.Store) bool { _, ok := s.(*save.MemoryStore); return ok }},
		{config.StoreFile, func(s save.Store) bool { _, ok := s.(*save.FileStore); return ok }},
		{config.StoreSQLite, func(s save.Store) bool { _, ok := s.(*save.SQLiteStore); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			cfg.Store = tt.store
			st, closeStore, err := openStore(cfg)
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer closeStore()
			if !tt.check(st) {
				t.Fatalf("store type = %T", st)
			}
			if err := st.SetUnlocked("relic_hunter", true); err != nil {
				t.Fatalf("SetUnlocked: %v", err)
			}
			flags, err := st.LoadUnlocked()
			if err != nil || !flags["relic_hunter"] {
				t.Fatalf("LoadUnlocked = %v, %v", flags, err)
			}
		})
	}
}

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Title: "Test", StartScenario: "siege"},
		Scenarios: map[string]types.ScenarioDef{
			"siege": {ID: "siege", Name: "Siege"},
		},
		Achievements: []types.AchievementDef{
			{ID: "relic_hunter", Kind: types.KindAcquiredCard, CardTypes: []types.CardType{"relic"}},
		},
	}
}

func TestNewEngine_ClosesStoreOnError(t *testing.T) {
	valid := testDefs()
	dup := testDefs()
	dup.Achievements = append(dup.Achievements, dup.Achievements[0])

	tests := []struct {
		name       string
		defs       *state.Defs
		wantErr    bool
		wantClosed bool
	}{
		{"valid", valid, false, false},
		{"duplicate achievements", dup, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := false
			open := func(config.Config) (save.Store, func() error, error) {
				return &save.MemoryStore{}, func() error { closed = true; return nil }, nil
			}
			eng, closeStore, err := newEngine(config.Config{Environment: "release", Seed: 1}, tt.defs, open)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if closed != tt.wantClosed {
				t.Errorf("closed = %v, want %v", closed, tt.wantClosed)
			}
			if err == nil {
				if eng == nil || closeStore == nil {
					t.Fatal("expected engine and close func")
				}
				closeStore()
				if !closed {
					t.Error("close func did not close the store")
				}
			}
		})
	}
}

func TestNewEngine_OpenError(t *testing.T) {
	open := func(config.Config) (save.Store, func() error, error) {
		return nil, nil, errors.New("disk on fire")
	}
	_, _, err := newEngine(config.Config{Store: config.StoreSQLite}, testDefs(), open)
	if err == nil || !strings.Contains(err.Error(), "opening sqlite store: disk on fire") {
		t.Errorf("err = %v", err)
	}
}

func TestRun_Args(t *testing.T) {
	if err := run(nil); !errors.Is(err, errUsage) {
		t.Errorf("run(nil) = %v, want usage error", err)
	}
	if err := run([]string{"--env"}); err == nil || !strings.Contains(err.Error(), "--env requires a value") {
		t.Errorf("run(--env) = %v", err)
	}
}

func TestRun_ScriptWithSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ACHIEVECORE_SAVE_DIR", dir)
	t.Setenv("ACHIEVECORE_STORE", config.StoreSQLite)
	t.Setenv("ACHIEVECORE_SEED", "7")
	t.Setenv("ACHIEVECORE_DB_PATH", "")
	t.Setenv("ACHIEVECORE_ENV", "release")

	script := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(script, []byte("hand\n/quit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"--script", script, "../../games/crusade"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "achievements.db")); err != nil {
		t.Errorf("expected sqlite database in save dir: %v", err)
	}
}
