package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Demo workflow inserted on first run so the inspector has something to
// show before a real workflow is imported.
var demoBlocks = []struct {
	name    string
	typ     string
	outputs string
}{
	{"Start", "starter", ""},
	{"Research Agent", "agent", `{"response":{"text":"string","model":"string","tokens":{"prompt":"number","completion":"number"}}}`},
	{"Summarize", "function", `{"response":{"summary":"string","length":"number"}}`},
	{"Quality Gate", "condition", `{"response":{"passed":"boolean"}}`},
}

// Seed inserts the demo workflow when the database is empty. Returns the
// id of the workflow the UI should open.
func Seed(db *sql.DB) (string, error) {
	existing, err := FirstWorkflowID(db)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	workflowID := uuid.NewString()
	err = WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO workflows (id, name) VALUES (?, ?)`, workflowID, "Demo Workflow"); err != nil {
			return fmt.Errorf("seed workflow: %w", err)
		}
		ids := make([]string, len(demoBlocks))
		for i, b := range demoBlocks {
			ids[i] = uuid.NewString()
			_, err := tx.Exec(
				`INSERT INTO blocks (id, workflow_id, name, type, outputs, position) VALUES (?, ?, ?, ?, ?, ?)`,
				ids[i], workflowID, b.name, b.typ, b.outputs, i,
			)
			if err != nil {
				return fmt.Errorf("seed block %s: %w", b.name, err)
			}
		}
		// Linear chain: Start -> Research Agent -> Summarize -> Quality Gate.
		for i := 0; i+1 < len(ids); i++ {
			_, err := tx.Exec(
				`INSERT INTO edges (workflow_id, source_id, target_id) VALUES (?, ?, ?)`,
				workflowID, ids[i], ids[i+1],
			)
			if err != nil {
				return fmt.Errorf("seed edge: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return workflowID, nil
}
