package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/pupplay/engine/gameerr"
	"github.com/nathoo/pupplay/engine/pet"
	"github.com/nathoo/pupplay/engine/player"
)

func testPlayer() *player.Player {
	p := player.New("Ann Lee!")
	p.Money = 321
	p.Level = 2
	p.Experience = 40
	p.House.Level = 2
	p.House.Capacity = 5
	p.House.Rooms = append(p.House.Rooms, "Room 2")
	p.Inventory["Grooming Kit"] = 2
	p.Achievements = []string{"helper"}
	p.StoryProgress.CurrentChapter = 2
	p.StoryProgress.CompletedQuests = []string{"first_pet", "basic_care"}

	rex := pet.New("Rex", "Dog", "Beagle", 92)
	rex.Level = 3
	rex.Hunger = 12.5
	rex.Age = 1.3
	rex.Traits = []string{"loyal", "rare"}
	p.Pets = append(p.Pets, rex, pet.New("Nemo", "Fish", "", 30))
	return p
}

func TestRoundTrip(t *testing.T) {
	orig := testPlayer()

	data, err := Encode(FromPlayer(orig))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p := snap.ToPlayer()

	if snap.Version != Version {
		t.Errorf("expected version %q, got %q", Version, snap.Version)
	}
	if p.Name != "Ann Lee!" || p.Money != 321 || p.Level != 2 || p.Experience != 40 {
		t.Errorf("player scalars not restored: %+v", p)
	}
	if p.House.Capacity != 5 || len(p.House.Rooms) != 2 {
		t.Errorf("house not restored: %+v", p.House)
	}
	if p.Inventory["Grooming Kit"] != 2 || p.Inventory["food"] != 10 {
		t.Errorf("inventory not restored: %v", p.Inventory)
	}
	if p.StoryProgress.CurrentChapter != 2 || len(p.StoryProgress.CompletedQuests) != 2 {
		t.Errorf("story progress not restored: %+v", p.StoryProgress)
	}
	if len(p.Pets) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(p.Pets))
	}
	rex := p.Pets[0]
	want := orig.Pets[0]
	if rex.ID != want.ID || rex.Level != 3 || rex.Hunger != 12.5 || rex.Age != 1.3 || rex.PurchasePrice != 92 {
		t.Errorf("pet not restored: %+v", rex)
	}
	if !rex.HasTrait("rare") {
		t.Error("expected rare trait after load")
	}
	if !rex.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("createdAt changed: %v vs %v", rex.CreatedAt, want.CreatedAt)
	}
}

func TestToPlayer_PetsAreIndependent(t *testing.T) {
	snap := FromPlayer(testPlayer())
	p := snap.ToPlayer()
	p.Pets[0].Feed()

	if p.Pets[0] == p.Pets[1] {
		t.Fatal("pets share a pointer")
	}
	if snap.Pets[0].Hunger != 12.5 {
		t.Errorf("snapshot mutated through live pet: %v", snap.Pets[0].Hunger)
	}
}

func TestDecode_NilCollections(t *testing.T) {
	snap, err := Decode([]byte(`{"name":"Bob","pets":[{"name":"Rex"}]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.Inventory == nil {
		t.Error("Inventory should not be nil")
	}
	if snap.Achievements == nil {
		t.Error("Achievements should not be nil")
	}
	if snap.House.Rooms == nil || snap.House.Decorations == nil {
		t.Error("House lists should not be nil")
	}
	if snap.StoryProgress.CompletedQuests == nil || snap.StoryProgress.UnlockedContent == nil {
		t.Error("StoryProgress lists should not be nil")
	}
	if snap.Pets[0].Traits == nil {
		t.Error("pet Traits should not be nil")
	}

	snap, err = Decode([]byte(`{"name":"Bob"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.Pets == nil {
		t.Error("Pets should not be nil")
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte("not json"))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"alice", "alice"},
		{"Ann Lee!", "Ann_Lee_"},
		{"../etc/passwd", "___etc_passwd"},
		{"Zoë", "Zo_"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "saves")),
		"sqlite": sq,
	}
}

func TestStores_SaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			loc, err := st.Save(ctx, FromPlayer(testPlayer()))
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if !strings.Contains(loc, "Ann_Lee_") {
				t.Errorf("expected sanitized key in location, got %q", loc)
			}

			snap, err := st.Load(ctx, "Ann Lee!")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if snap.Money != 321 || len(snap.Pets) != 2 {
				t.Errorf("unexpected snapshot: money=%d pets=%d", snap.Money, len(snap.Pets))
			}

			// Overwrite.
			p := snap.ToPlayer()
			p.Money = 5
			if _, err := st.Save(ctx, FromPlayer(p)); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}
			snap, err = st.Load(ctx, "Ann Lee!")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if snap.Money != 5 {
				t.Errorf("expected overwritten money 5, got %d", snap.Money)
			}

			names, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(names) != 1 || names[0] != "Ann_Lee_" {
				t.Errorf("expected [Ann_Lee_], got %v", names)
			}
		})
	}
}

func TestStores_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Load(ctx, "nobody")
			if !errors.Is(err, gameerr.ErrSaveNotFound) {
				t.Fatalf("expected ErrSaveNotFound, got %v", err)
			}
			if err.Error() != "No save file found for nobody" {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestFileStore_PrettyJSON(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(dir)
	if _, err := st.Save(context.Background(), FromPlayer(testPlayer())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Ann_Lee_.json"))
	if err != nil {
		t.Fatalf("read save: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"Ann Lee!\"") {
		t.Errorf("expected indented JSON, got:\n%s", data)
	}
}

func TestFileStore_CorruptSave(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bob.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(dir).Load(context.Background(), "bob")
	if err == nil || errors.Is(err, gameerr.ErrSaveNotFound) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	names, err := NewFileStore(filepath.Join(t.TempDir(), "none")).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no saves, got %v", names)
	}
}
