package database

import (
	"path/filepath"
	"testing"

	"flowdeck/internal/workflow"
)

func openTestDB(t *testing.T) (dbPath string, workflowID string, store *Store) {
	t.Helper()
	dbPath = filepath.Join(t.TempDir(), "flowdeck.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	workflowID, err = Seed(db)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return dbPath, workflowID, NewStore(db, workflowID)
}

func TestSeedAndLoad(t *testing.T) {
	_, workflowID, store := openTestDB(t)
	if workflowID == "" {
		t.Fatal("Seed returned empty workflow id")
	}

	blocks, err := store.Blocks()
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("len(blocks) = %d, want 4", len(blocks))
	}
	if blocks[0].Type != workflow.BlockTypeStarter {
		t.Fatalf("first block type = %q, want starter", blocks[0].Type)
	}

	edges, err := store.Edges()
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("len(edges) = %d, want 3", len(edges))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	dbPath, workflowID, _ := openTestDB(t)

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	again, err := Seed(db)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if again != workflowID {
		t.Fatalf("second Seed returned %q, want existing %q", again, workflowID)
	}
}

func TestStoreResolvesThroughResolver(t *testing.T) {
	_, _, store := openTestDB(t)

	groups, err := workflow.NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Three non-starter blocks, each with a response mapping.
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	// Quality Gate is furthest from Start so its group leads.
	if groups[0].BlockName != "Quality Gate" {
		t.Fatalf("groups[0] = %q, want Quality Gate", groups[0].BlockName)
	}
	// JSON outputs columns keep key order through flattening.
	var agent *workflow.Group
	for i := range groups {
		if groups[i].BlockName == "Research Agent" {
			agent = &groups[i]
		}
	}
	if agent == nil {
		t.Fatal("Research Agent group missing")
	}
	wantPaths := []string{"response.text", "response.model", "response.tokens.prompt", "response.tokens.completion"}
	if len(agent.Handles) != len(wantPaths) {
		t.Fatalf("agent handles = %+v", agent.Handles)
	}
	for i, h := range agent.Handles {
		if h.Path != wantPaths[i] {
			t.Fatalf("agent handle[%d] = %q, want %q", i, h.Path, wantPaths[i])
		}
	}
}

func TestFirstWorkflowIDEmptyDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	id, err := FirstWorkflowID(db)
	if err != nil {
		t.Fatalf("FirstWorkflowID: %v", err)
	}
	if id != "" {
		t.Fatalf("id = %q, want empty", id)
	}
}
