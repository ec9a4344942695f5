package server

import (
	"errors"
	"sync"
	"testing"

	"github.com/04pril/minefield/internal/minefield"
)

func mineCount(f *minefield.MineField) int {
	n := 0
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			if f.HasMine(r, c) {
				n++
			}
		}
	}
	return n
}

func TestStore_CreateGetDelete(t *testing.T) {
	s := NewStore(10)
	sess, err := s.Create(4, 4, 3, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, ok := s.Get(sess.ID); !ok || got != sess {
		t.Fatalf("Get(%q) = %v, %v", sess.ID, got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len %d, want 1", s.Len())
	}
	if !s.Delete(sess.ID) || s.Delete(sess.ID) {
		t.Error("Delete should succeed once")
	}
	if _, ok := s.Get(sess.ID); ok {
		t.Error("deleted session still found")
	}
}

func TestStore_CreateInvalid(t *testing.T) {
	s := NewStore(10)
	if _, err := s.Create(2, 2, 2, nil); !errors.Is(err, minefield.ErrTooManyMines) {
		t.Errorf("err %v, want ErrTooManyMines", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len %d after failed create, want 0", s.Len())
	}
}

func TestStore_Full(t *testing.T) {
	s := NewStore(2)
	for i := 0; i < 2; i++ {
		if _, err := s.Create(3, 3, 1, nil); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if _, err := s.Create(3, 3, 1, nil); !errors.Is(err, ErrStoreFull) {
		t.Errorf("err %v, want ErrStoreFull", err)
	}
}

func TestSession_PopulatesOnFirstUncover(t *testing.T) {
	s := NewStore(10)
	sess, err := s.Create(8, 8, 10, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n := mineCount(sess.game.Field()); n != 0 {
		t.Fatalf("mines before first uncover %d, want 0", n)
	}
	snap := sess.Uncover(3, 3)
	if snap.Safe == nil || !*snap.Safe {
		t.Fatal("first uncover must be safe")
	}
	if n := mineCount(sess.game.Field()); n != 10 {
		t.Errorf("mines after first uncover %d, want 10", n)
	}

	sess.Reset()
	if n := mineCount(sess.game.Field()); n != 0 {
		t.Errorf("mines after reset %d, want 0", n)
	}
	if sess.game.Placed() {
		t.Error("reset should lift the mines")
	}
}

func TestSession_ConcurrentMoves(t *testing.T) {
	s := NewStore(10)
	sess, err := s.Create(12, 12, 20, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sess.CycleGuess((i+j)%12, j%12)
				sess.Snapshot()
			}
		}(i)
	}
	wg.Wait()
}
