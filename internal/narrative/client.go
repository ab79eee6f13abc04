// Package narrative 叙述生成服务（LLM 网关）客户端
//
// 单次调用，不重试；调用方负责在失败时使用本地兜底结果。
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
)

const (
	anomaliesPath    = "/v1/narratives/anomalies"
	interactionsPath = "/v1/narratives/interactions"
	labsPath         = "/v1/narratives/labs"

	defaultTimeout = 10 * time.Second
)

// ErrDisabled 叙述服务未启用
var ErrDisabled = errors.New("narrative service disabled")

// Generator 叙述生成接口
type Generator interface {
	// AnomalyRecommendation 根据异常列表生成处置建议
	AnomalyRecommendation(ctx context.Context, req AnomalyRequest) (*models.Recommendation, error)
	// InteractionGuidance 根据相互作用列表生成用药指导
	InteractionGuidance(ctx context.Context, req InteractionRequest) (*models.InteractionGuidance, error)
	// LabSummary 生成化验单摘要
	LabSummary(ctx context.Context, req LabRequest) (*models.LabSummary, error)
}

// AnomalyRequest 异常建议请求
type AnomalyRequest struct {
	PatientID string                  `json:"patient_id"`
	Reading   models.VitalReading     `json:"reading"`
	Findings  []models.AnomalyFinding `json:"findings"`
}

// InteractionRequest 用药指导请求
type InteractionRequest struct {
	PatientID          string                      `json:"patient_id"`
	NewMedication      models.Medication           `json:"new_medication"`
	CurrentMedications []models.Medication         `json:"current_medications"`
	Findings           []models.InteractionFinding `json:"findings"`
}

// LabRequest 化验摘要请求
type LabRequest struct {
	PatientID        string                  `json:"patient_id"`
	TestName         string                  `json:"test_name"`
	Results          []lab.InterpretedResult `json:"results"`
	CriticalFindings []lab.InterpretedResult `json:"critical_findings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client 叙述服务 HTTP 客户端
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 创建客户端
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// AnomalyRecommendation 调用 /v1/narratives/anomalies
func (c *Client) AnomalyRecommendation(ctx context.Context, req AnomalyRequest) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := c.post(ctx, anomaliesPath, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// InteractionGuidance 调用 /v1/narratives/interactions
func (c *Client) InteractionGuidance(ctx context.Context, req InteractionRequest) (*models.InteractionGuidance, error) {
	var guidance models.InteractionGuidance
	if err := c.post(ctx, interactionsPath, req, &guidance); err != nil {
		return nil, err
	}
	return &guidance, nil
}

// LabSummary 调用 /v1/narratives/labs
func (c *Client) LabSummary(ctx context.Context, req LabRequest) (*models.LabSummary, error) {
	var summary models.LabSummary
	if err := c.post(ctx, labsPath, req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	var apiErr errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		c.logger.Warn("Narrative API call failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("failed to call narrative API: %w", err)
	}

	if resp.IsError() {
		c.logger.Warn("Narrative API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("error", apiErr.Error),
		)
		return fmt.Errorf("narrative API error: %s (status: %d)", apiErr.Error, resp.StatusCode())
	}

	c.logger.Debug("Narrative API call succeeded",
		zap.String("path", path),
		zap.Duration("elapsed", resp.Time()),
	)
	return nil
}

// Disabled 未配置叙述服务时使用，所有调用都返回 ErrDisabled
type Disabled struct{}

func (Disabled) AnomalyRecommendation(context.Context, AnomalyRequest) (*models.Recommendation, error) {
	return nil, ErrDisabled
}

func (Disabled) InteractionGuidance(context.Context, InteractionRequest) (*models.InteractionGuidance, error) {
	return nil, ErrDisabled
}

func (Disabled) LabSummary(context.Context, LabRequest) (*models.LabSummary, error) {
	return nil, ErrDisabled
}
