package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/repository"
	"github.com/arjunishere-e/medisync/internal/service"
)

type mockClinical struct{ mock.Mock }

func (m *mockClinical) EvaluateVitals(ctx context.Context, reading models.VitalReading, history []models.VitalReading) *models.VitalsAssessment {
	return m.Called(ctx, reading, history).Get(0).(*models.VitalsAssessment)
}

func (m *mockClinical) ProcessReading(ctx context.Context, reading models.VitalReading) (*models.VitalsAssessment, error) {
	args := m.Called(ctx, reading)
	if a := args.Get(0); a != nil {
		return a.(*models.VitalsAssessment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClinical) CheckMedication(ctx context.Context, patientID string, newMed models.Medication) (*service.MedicationCheck, error) {
	args := m.Called(ctx, patientID, newMed)
	if c := args.Get(0); c != nil {
		return c.(*service.MedicationCheck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClinical) AnalyzeLabReport(ctx context.Context, patientID string, report models.LabReport) (*service.LabReportAnalysis, error) {
	args := m.Called(ctx, patientID, report)
	if a := args.Get(0); a != nil {
		return a.(*service.LabReportAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClinical) ListActiveAlerts(ctx context.Context, patientID string) ([]models.Alert, error) {
	args := m.Called(ctx, patientID)
	if a := args.Get(0); a != nil {
		return a.([]models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClinical) AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string) (*models.Alert, error) {
	args := m.Called(ctx, alertID, acknowledgedBy)
	if a := args.Get(0); a != nil {
		return a.(*models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestRouter() (http.Handler, *mockClinical) {
	svc := &mockClinical{}
	return NewRouter(NewClinicalHandler(svc, zap.NewNop()), zap.NewNop()), svc
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result[json.RawMessage] {
	t.Helper()
	var result Result[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ResultSuccess, decodeResult(t, rec).Code)
}

func TestEvaluateVitals(t *testing.T) {
	h, svc := newTestRouter()

	svc.On("EvaluateVitals", mock.Anything, mock.MatchedBy(func(r models.VitalReading) bool {
		return r.HeartRate != nil && *r.HeartRate == 30
	}), mock.MatchedBy(func(hist []models.VitalReading) bool {
		return len(hist) == 1
	})).Return(&models.VitalsAssessment{
		PatientID:       "p-1",
		Findings:        []models.AnomalyFinding{{Type: models.FindingThresholdCritical, Severity: models.SeverityCritical}},
		HighestSeverity: models.SeverityCritical,
	}).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/vitals/evaluate",
		`{"reading":{"patient_id":"p-1","heart_rate":30},"history":[{"heart_rate":72}]}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	var assessment models.VitalsAssessment
	require.NoError(t, json.Unmarshal(result.Result, &assessment))
	assert.Equal(t, models.SeverityCritical, assessment.HighestSeverity)
	svc.AssertExpectations(t)
}

func TestEvaluateVitals_BadBody(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/vitals/evaluate", `{bad`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ResultError, decodeResult(t, rec).Code)
}

func TestSubmitReading(t *testing.T) {
	h, svc := newTestRouter()

	svc.On("ProcessReading", mock.Anything, mock.MatchedBy(func(r models.VitalReading) bool {
		return r.PatientID == "p-1"
	})).Return(&models.VitalsAssessment{PatientID: "p-1", Findings: []models.AnomalyFinding{}}, nil).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/vitals", `{"heart_rate":75}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestSubmitReading_PatientMismatch(t *testing.T) {
	h, svc := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/vitals", `{"patient_id":"p-2"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ProcessReading", mock.Anything, mock.Anything)
}

func TestSubmitReading_ServiceError(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("ProcessReading", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/vitals", `{"heart_rate":75}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to process reading", decodeResult(t, rec).Message)
}

func TestCheckMedication(t *testing.T) {
	h, svc := newTestRouter()
	med := models.Medication{Name: "Aspirin", Dosage: "81mg"}

	svc.On("CheckMedication", mock.Anything, "p-1", med).Return(&service.MedicationCheck{
		PatientID: "p-1",
		Findings: []models.InteractionFinding{
			{Drug1: "Aspirin", Drug2: "Warfarin", Severity: models.InteractionCritical, Type: models.InteractionKnown},
		},
		HasCritical: true,
	}, nil).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/medications/check", `{"name":"Aspirin","dosage":"81mg"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var check service.MedicationCheck
	require.NoError(t, json.Unmarshal(decodeResult(t, rec).Result, &check))
	assert.True(t, check.HasCritical)
	svc.AssertExpectations(t)
}

func TestCheckMedication_PatientNotFound(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("CheckMedication", mock.Anything, "p-9", mock.Anything).
		Return(nil, fmt.Errorf("failed to load patient: %w", repository.ErrNotFound)).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-9/medications/check", `{"name":"Aspirin"}`, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckMedication_MissingName(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/medications/check", `{"dosage":"5mg"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInterpretLab(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/labs/interpret", `{"parameter":"Glucose","value":"250"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(decodeResult(t, rec).Result, &got))
	assert.Equal(t, "critical", got.Status)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/labs/interpret", `{"parameter":"xyz123","value":"1"}`, nil)
	require.NoError(t, json.Unmarshal(decodeResult(t, rec).Result, &got))
	assert.Equal(t, "unknown", got.Status)
}

func TestAnalyzeLabReport(t *testing.T) {
	h, svc := newTestRouter()

	svc.On("AnalyzeLabReport", mock.Anything, "p-1", mock.MatchedBy(func(r models.LabReport) bool {
		return r.PatientID == "p-1" && len(r.Results) == 1
	})).Return(&service.LabReportAnalysis{PatientID: "p-1"}, nil).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/labs/analyze",
		`{"report_id":"r-1","results":[{"parameter":"Glucose","value":"250","unit":"mg/dL"}]}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAnalyzeLabReport_NoResults(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/patients/p-1/labs/analyze", `{"results":[]}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportLabAnalysis(t *testing.T) {
	h, _ := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/labs/analyze/export",
		`{"sex":"female","report":{"report_id":"r-1","results":[{"parameter":"Hemoglobin","value":"11","unit":"g/dL"}]}}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "lab_analysis_r-1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Lab Analysis")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "low", rows[1][3])
}

func TestListAlerts(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("ListActiveAlerts", mock.Anything, "p-1").Return([]models.Alert{{AlertID: "a-1"}}, nil).Once()

	rec := doRequest(t, h, http.MethodGet, "/api/v1/patients/p-1/alerts", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(decodeResult(t, rec).Result, &alerts))
	assert.Len(t, alerts, 1)
}

func TestAcknowledgeAlert_Header(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("AcknowledgeAlert", mock.Anything, "a-1", "nurse-7").
		Return(&models.Alert{AlertID: "a-1", Status: models.AlertAcknowledged}, nil).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/alerts/a-1/acknowledge", "", map[string]string{"X-User-Id": "nurse-7"})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAcknowledgeAlert_Body(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("AcknowledgeAlert", mock.Anything, "a-1", "dr-who").
		Return(&models.Alert{AlertID: "a-1"}, nil).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/alerts/a-1/acknowledge", `{"acknowledged_by":"dr-who"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAcknowledgeAlert_MissingUser(t *testing.T) {
	h, svc := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/alerts/a-1/acknowledge", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AcknowledgeAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcknowledgeAlert_NotFound(t *testing.T) {
	h, svc := newTestRouter()
	svc.On("AcknowledgeAlert", mock.Anything, "a-9", "nurse-7").
		Return(nil, fmt.Errorf("failed to get alert: %w", repository.ErrNotFound)).Once()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/alerts/a-9/acknowledge", "", map[string]string{"X-User-Id": "nurse-7"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
