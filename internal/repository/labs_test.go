package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
)

func TestSaveAnalysis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewLabResultsRepository(db, zap.NewNop())

	analysis := lab.AnalyzeReport(models.LabReport{
		ReportID: "rep-1",
		Results: []models.LabResult{
			{Parameter: "Glucose", Value: "250", Unit: "mg/dL"},
			{Parameter: "Sodium", Value: "140", Unit: "mEq/L"},
		},
	}, models.SexUnspecified)
	at := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO lab_results`).
		WithArgs("p-1", "rep-1", "Glucose", "250", "mg/dL", "critical", "Above normal (70-100 mg/dL)", at).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO lab_results`).
		WithArgs("p-1", "rep-1", "Sodium", "140", "mEq/L", "normal", "Within normal range", at).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveAnalysis(context.Background(), "p-1", analysis, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_NothingToSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewLabResultsRepository(db, zap.NewNop())

	require.NoError(t, repo.SaveAnalysis(context.Background(), "p-1", lab.Analysis{}, time.Now()))
	require.Error(t, repo.SaveAnalysis(context.Background(), "", lab.Analysis{}, time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}
