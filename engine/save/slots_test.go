package save

import (
	"path/filepath"
	"testing"
)

func TestSlotPath(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		want    string
		wantErr bool
	}{
		{"default", "", filepath.Join("saves", "quicksave.json"), false},
		{"named", "acre", filepath.Join("saves", "acre.json"), false},
		{"slash", "../acre", "", true},
		{"backslash", `a\b`, "", true},
		{"dotdot", "..", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlotPath("saves", tt.slot)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got path %q", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("SlotPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteAndReadSlot(t *testing.T) {
	defs := testDefs()
	data := []byte(`{"version":"1.0","game":"Test Game","session":{"id":"s1","turn":2}}`)
	dir := filepath.Join(t.TempDir(), "nested")

	if err := WriteSlot(dir, "acre", data); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}
	sd, err := ReadSlot(dir, "acre")
	if err != nil {
		t.Fatalf("ReadSlot: %v", err)
	}
	if sd.Session.ID != "s1" || sd.Session.Turn != 2 {
		t.Errorf("session = %+v", sd.Session)
	}
	if sd.Game != defs.Game.Title {
		t.Errorf("game = %q, want %q", sd.Game, defs.Game.Title)
	}
	if sd.Session.Player.Hand == nil {
		t.Error("expected zones initialized after reading a slot")
	}

	if _, err := ReadSlot(dir, "missing"); err == nil {
		t.Error("expected error reading a missing slot")
	}
}
