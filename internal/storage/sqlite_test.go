package storage

import (
	"fmt"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{SessionID: "a", Player: "local", Score: 100, Level: 1, Cause: "hazard"},
		{SessionID: "b", Player: "local", Score: 2400, Level: 3, Cause: "timeout"},
		{SessionID: "c", Player: "ssh", Score: 700, Level: 2, Cause: "stopped"},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults(10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(top))
	}

	// Should be sorted descending
	expected := []int{2400, 700, 100}
	for i, score := range expected {
		if top[i].Score != score {
			t.Errorf("top[%d].Score = %d, expected %d", i, top[i].Score, score)
		}
	}
	if top[0].SessionID != "b" || top[0].Level != 3 || top[0].Cause != "timeout" {
		t.Errorf("top[0] = %+v, expected session b", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopResultsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveResult(Result{SessionID: fmt.Sprintf("s%d", i), Score: 500, Cause: "timeout"}); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopResults(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 10 {
		t.Errorf("TopResults(0) returned %d, expected default limit 10", len(top))
	}
	if top[0].SessionID != "s0" {
		t.Errorf("tie winner = %s, expected the earliest game", top[0].SessionID)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("HighScore() on empty store = %d, expected 0", score)
	}

	store.SaveResult(Result{SessionID: "x", Score: 300, Cause: "timeout"})
	store.SaveResult(Result{SessionID: "y", Score: 1200, Cause: "timeout"})

	if score, _ := store.HighScore(); score != 1200 {
		t.Errorf("HighScore() = %d, expected 1200", score)
	}
}

func TestStoreRejectsDuplicateSession(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{SessionID: "dup", Score: 1, Cause: "hazard"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveResult(Result{SessionID: "dup", Score: 2, Cause: "hazard"}); err == nil {
		t.Error("SaveResult() should reject a second result for the same session")
	}
	if _, err := store.SaveResult(Result{Score: 2, Cause: "hazard"}); err == nil {
		t.Error("SaveResult() should reject a result without session id")
	}

	if n, _ := store.Count(); n != 1 {
		t.Errorf("Count() = %d, expected 1", n)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	a.SaveResult(Result{SessionID: "only-a", Score: 10, Cause: "timeout"})

	if n, _ := b.Count(); n != 0 {
		t.Errorf("second in-memory store sees %d results, expected 0", n)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.SaveResult(Result{SessionID: fmt.Sprintf("g%d", i), Score: i, Cause: "timeout"}); err != nil {
				t.Errorf("SaveResult() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if n, _ := store.Count(); n != 20 {
		t.Errorf("Count() = %d, expected 20", n)
	}
}
