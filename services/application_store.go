package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"autoapply/models"
)

// ApplicationStore persists application run records.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// SaveRun records the outcome of one orchestrator run for a user.
func (s *ApplicationStore) SaveRun(userID int, result *models.ApplicationResult) (*models.ApplicationRun, error) {
	run := &models.ApplicationRun{
		ID:             uuid.New().String(),
		UserID:         userID,
		URL:            result.URL,
		FinalURL:       result.FinalURL,
		Success:        result.Success,
		ServiceUsed:    result.ServiceUsed,
		FieldsAnalyzed: result.FieldsAnalyzed,
		FieldsFilled:   result.FieldsFilled,
		FieldsFailed:   result.FieldsFailed,
		Errors:         result.Errors,
		Steps:          result.NavigationSteps,
		CreatedAt:      time.Now(),
	}

	errorsJSON, err := json.Marshal(run.Errors)
	if err != nil {
		return nil, fmt.Errorf("error marshaling run errors: %v", err)
	}
	stepsJSON, err := json.Marshal(run.Steps)
	if err != nil {
		return nil, fmt.Errorf("error marshaling run steps: %v", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO application_runs
			(id, user_id, url, final_url, success, service_used,
			 fields_analyzed, fields_filled, fields_failed, errors, steps, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		run.ID, run.UserID, run.URL, run.FinalURL, run.Success, run.ServiceUsed,
		run.FieldsAnalyzed, run.FieldsFilled, run.FieldsFailed,
		errorsJSON, stepsJSON, run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error saving application run: %v", err)
	}

	return run, nil
}

// ListRuns returns a user's runs, newest first.
func (s *ApplicationStore) ListRuns(userID int, limit int) ([]models.ApplicationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, url, final_url, success, service_used,
		       fields_analyzed, fields_filled, fields_failed, errors, steps, created_at
		FROM application_runs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying application runs: %v", err)
	}
	defer rows.Close()

	var runs []models.ApplicationRun
	for rows.Next() {
		var run models.ApplicationRun
		var errorsJSON, stepsJSON []byte
		if err := rows.Scan(&run.ID, &run.UserID, &run.URL, &run.FinalURL, &run.Success,
			&run.ServiceUsed, &run.FieldsAnalyzed, &run.FieldsFilled, &run.FieldsFailed,
			&errorsJSON, &stepsJSON, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning application run: %v", err)
		}
		if err := json.Unmarshal(errorsJSON, &run.Errors); err != nil {
			run.Errors = []string{}
		}
		if err := json.Unmarshal(stepsJSON, &run.Steps); err != nil {
			run.Steps = []string{}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
