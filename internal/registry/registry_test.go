package registry

import (
	"testing"

	"metallircd/internal/model"
)

func TestInsertAndLookup(t *testing.T) {
	r := NewUserRegistry()
	u := model.NewUser("alice", "alice", "Alice", "host")
	if err := r.Insert(u); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	got, ok := r.ByNick("ALICE")
	if !ok || got.ID != u.ID {
		t.Error("expected case-insensitive lookup to find the user")
	}
}

func TestInsertDuplicateNickRejected(t *testing.T) {
	r := NewUserRegistry()
	a := model.NewUser("alice", "alice", "Alice", "host")
	b := model.NewUser("Alice", "bob", "Bob", "host")
	if err := r.Insert(a); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := r.Insert(b); err == nil {
		t.Error("expected a duplicate-nick error on the second insert")
	}
}

func TestRenameMovesIndexAtomically(t *testing.T) {
	r := NewUserRegistry()
	u := model.NewUser("alice", "alice", "Alice", "host")
	if err := r.Insert(u); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !r.Rename(u.ID, "alyce") {
		t.Fatal("Rename should have succeeded")
	}
	if _, ok := r.ByNick("alice"); ok {
		t.Error("old nick should no longer resolve")
	}
	got, ok := r.ByNick("alyce")
	if !ok || got.ID != u.ID {
		t.Error("new nick should resolve to the same user")
	}
}

func TestRenameRejectsCollision(t *testing.T) {
	r := NewUserRegistry()
	a := model.NewUser("alice", "a", "A", "host")
	b := model.NewUser("bob", "b", "B", "host")
	r.Insert(a)
	r.Insert(b)
	if r.Rename(a.ID, "bob") {
		t.Error("rename onto an existing nick should fail")
	}
	if got, _ := r.ByNick("alice"); got == nil || got.ID != a.ID {
		t.Error("old nick should remain intact after a failed rename")
	}
}

func TestDestroyRemovesBothIndices(t *testing.T) {
	r := NewUserRegistry()
	u := model.NewUser("alice", "a", "A", "host")
	r.Insert(u)
	r.Destroy(u.ID)
	if _, ok := r.ByNick("alice"); ok {
		t.Error("nick index should be empty after Destroy")
	}
	if _, ok := r.ByID(u.ID); ok {
		t.Error("id index should be empty after Destroy")
	}
}

func TestChannelJoinThenDestroyIfEmpty(t *testing.T) {
	cr := NewChannelRegistry()
	u := model.NewUser("alice", "a", "A", "host")
	c := cr.GetOrCreate("#general")
	c.Join(u)

	if cr.DestroyIfEmpty("#general") {
		t.Error("should not destroy a non-empty channel")
	}
	c.Part(u)
	if !cr.DestroyIfEmpty("#general") {
		t.Error("should destroy an empty channel")
	}
	if cr.Has("#general") {
		t.Error("channel should no longer be registered")
	}
}

func TestMatchingMaskByNick(t *testing.T) {
	r := NewUserRegistry()
	r.Insert(model.NewUser("alice", "a", "A", "host"))
	r.Insert(model.NewUser("alfred", "a", "A", "host"))
	r.Insert(model.NewUser("bob", "b", "B", "host"))
	got := r.MatchingMask(FieldNick, "al*")
	if len(got) != 2 {
		t.Errorf("expected 2 matches for al*, got %d", len(got))
	}
}
