package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/repository"
	"github.com/arjunishere-e/medisync/internal/service"
)

// ClinicalService ClinicalHandler 依赖的服务接口（service.ClinicalService 实现）
type ClinicalService interface {
	EvaluateVitals(ctx context.Context, reading models.VitalReading, history []models.VitalReading) *models.VitalsAssessment
	ProcessReading(ctx context.Context, reading models.VitalReading) (*models.VitalsAssessment, error)
	CheckMedication(ctx context.Context, patientID string, newMed models.Medication) (*service.MedicationCheck, error)
	AnalyzeLabReport(ctx context.Context, patientID string, report models.LabReport) (*service.LabReportAnalysis, error)
	ListActiveAlerts(ctx context.Context, patientID string) ([]models.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string) (*models.Alert, error)
}

// ClinicalHandler 临床接口 Handler
type ClinicalHandler struct {
	svc    ClinicalService
	logger *zap.Logger
}

// NewClinicalHandler 创建 Handler
func NewClinicalHandler(svc ClinicalService, logger *zap.Logger) *ClinicalHandler {
	return &ClinicalHandler{svc: svc, logger: logger}
}

type evaluateVitalsRequest struct {
	Reading models.VitalReading   `json:"reading"`
	History []models.VitalReading `json:"history"`
}

type interpretLabRequest struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Sex       string `json:"sex"`
}

type exportLabRequest struct {
	Sex    string           `json:"sex"`
	Report models.LabReport `json:"report"`
}

type acknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by"`
}

// EvaluateVitals POST /api/v1/vitals/evaluate
// 仅评估，不落库；history 最新在前。
func (h *ClinicalHandler) EvaluateVitals(w http.ResponseWriter, r *http.Request) {
	var req evaluateVitalsRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.svc.EvaluateVitals(r.Context(), req.Reading, req.History)))
}

// SubmitReading POST /api/v1/patients/{patientID}/vitals
func (h *ClinicalHandler) SubmitReading(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	var reading models.VitalReading
	if err := readBodyJSON(r, maxBodyBytes, &reading); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}
	if reading.PatientID != "" && reading.PatientID != patientID {
		writeJSON(w, http.StatusBadRequest, Fail("patient_id does not match path"))
		return
	}
	reading.PatientID = patientID

	assessment, err := h.svc.ProcessReading(r.Context(), reading)
	if err != nil {
		h.writeServiceError(w, "process reading", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(assessment))
}

// CheckMedication POST /api/v1/patients/{patientID}/medications/check
func (h *ClinicalHandler) CheckMedication(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	var med models.Medication
	if err := readBodyJSON(r, maxBodyBytes, &med); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}
	if strings.TrimSpace(med.Name) == "" {
		writeJSON(w, http.StatusBadRequest, Fail("medication name is required"))
		return
	}

	check, err := h.svc.CheckMedication(r.Context(), patientID, med)
	if err != nil {
		h.writeServiceError(w, "check medication", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(check))
}

// InterpretLab POST /api/v1/labs/interpret
func (h *ClinicalHandler) InterpretLab(w http.ResponseWriter, r *http.Request) {
	var req interpretLabRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(lab.InterpretValue(req.Parameter, req.Value, models.ParseSex(req.Sex))))
}

// AnalyzeLabReport POST /api/v1/patients/{patientID}/labs/analyze
func (h *ClinicalHandler) AnalyzeLabReport(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	var report models.LabReport
	if err := readBodyJSON(r, maxBodyBytes, &report); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}
	if len(report.Results) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("report has no results"))
		return
	}
	report.PatientID = patientID

	analysis, err := h.svc.AnalyzeLabReport(r.Context(), patientID, report)
	if err != nil {
		h.writeServiceError(w, "analyze lab report", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(analysis))
}

// ExportLabAnalysis POST /api/v1/labs/analyze/export
// 返回 xlsx 文件。
func (h *ClinicalHandler) ExportLabAnalysis(w http.ResponseWriter, r *http.Request) {
	var req exportLabRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
		return
	}

	analysis := lab.AnalyzeReport(req.Report, models.ParseSex(req.Sex))
	data, err := lab.GenerateAnalysisExport(analysis)
	if err != nil {
		h.logger.Error("Failed to generate lab analysis export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	name := req.Report.ReportID
	if name == "" {
		name = time.Now().UTC().Format("20060102150405")
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lab_analysis_%s.xlsx"`, name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListAlerts GET /api/v1/patients/{patientID}/alerts
func (h *ClinicalHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.ListActiveAlerts(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		h.writeServiceError(w, "list alerts", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(alerts))
}

// AcknowledgeAlert POST /api/v1/alerts/{alertID}/acknowledge
// 确认人取 X-User-Id，缺省时取请求体 acknowledged_by。
func (h *ClinicalHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertID")

	acknowledgedBy := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if acknowledgedBy == "" {
		var req acknowledgeRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil && !errors.Is(err, errEmptyBody) {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body: "+err.Error()))
			return
		}
		acknowledgedBy = strings.TrimSpace(req.AcknowledgedBy)
	}
	if acknowledgedBy == "" {
		writeJSON(w, http.StatusBadRequest, Fail("acknowledged_by is required"))
		return
	}

	alert, err := h.svc.AcknowledgeAlert(r.Context(), alertID, acknowledgedBy)
	if err != nil {
		h.writeServiceError(w, "acknowledge alert", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(alert))
}

func (h *ClinicalHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	h.logger.Error("Request failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, Fail("failed to "+op))
}
