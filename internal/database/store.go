package database

import (
	"database/sql"
	"fmt"

	"flowdeck/internal/workflow"
)

// Store reads one workflow's blocks and edges from sqlite. It implements
// workflow.Store; the UI never writes through it.
type Store struct {
	db         *sql.DB
	workflowID string
}

// NewStore binds a store to a workflow id.
func NewStore(db *sql.DB, workflowID string) *Store {
	return &Store{db: db, workflowID: workflowID}
}

// FirstWorkflowID returns the oldest workflow's id, or empty when the
// database holds none.
func FirstWorkflowID(db *sql.DB) (string, error) {
	var id string
	err := db.QueryRow(`SELECT id FROM workflows ORDER BY created_at, id LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("first workflow: %w", err)
	}
	return id, nil
}

// Blocks returns the workflow's blocks in canvas position order.
func (s *Store) Blocks() ([]workflow.Block, error) {
	rows, err := s.db.Query(
		`SELECT id, name, type, outputs FROM blocks WHERE workflow_id = ? ORDER BY position, rowid`,
		s.workflowID,
	)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	defer rows.Close()

	var out []workflow.Block
	for rows.Next() {
		var b workflow.Block
		var outputsDoc string
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &outputsDoc); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		// A block with an unreadable outputs column still renders; it just
		// contributes no handles.
		if outputs, err := workflow.DecodeOutputs([]byte(outputsDoc)); err == nil {
			b.Outputs = outputs
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Edges returns the workflow's directed edges in insertion order.
func (s *Store) Edges() ([]workflow.Edge, error) {
	rows, err := s.db.Query(
		`SELECT source_id, target_id FROM edges WHERE workflow_id = ? ORDER BY id`,
		s.workflowID,
	)
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}
	defer rows.Close()

	var out []workflow.Edge
	for rows.Next() {
		var e workflow.Edge
		if err := rows.Scan(&e.Source, &e.Target); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
