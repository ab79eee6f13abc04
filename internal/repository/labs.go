package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/lab"
)

// LabResultsRepository 化验解读结果仓库
type LabResultsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLabResultsRepository 创建化验结果仓库
func NewLabResultsRepository(db *sql.DB, logger *zap.Logger) *LabResultsRepository {
	return &LabResultsRepository{
		db:     db,
		logger: logger,
	}
}

// SaveAnalysis 保存一份化验单的逐项解读
func (r *LabResultsRepository) SaveAnalysis(ctx context.Context, patientID string, analysis lab.Analysis, analyzedAt time.Time) error {
	if patientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if len(analysis.InterpretedResults) == 0 {
		return nil
	}

	query := `
		INSERT INTO lab_results (
			patient_id,
			report_id,
			parameter,
			value,
			unit,
			status,
			interpretation,
			analyzed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range analysis.InterpretedResults {
		if _, err := tx.ExecContext(ctx, query,
			patientID,
			analysis.ReportID,
			item.Parameter,
			item.Value,
			item.Unit,
			string(item.Interpretation.Status),
			item.Interpretation.Message,
			analyzedAt,
		); err != nil {
			return fmt.Errorf("failed to insert lab result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lab results: %w", err)
	}
	return nil
}
