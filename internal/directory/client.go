package directory

import (
	"context"
	"fmt"
	"time"

	"carewatch/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// rosterResponse 目录服务响应信封
type rosterResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Result  []domain.Resident `json:"result"`
}

// Client 外部目录服务客户端（花名册来源）
// 花名册归目录服务所有，本服务只读；调用失败向上传播，
// 让调用方能区分"花名册为空"和"取不到花名册"
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 创建目录服务客户端
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListRoster 获取在住住户花名册（目录服务保证顺序）
func (c *Client) ListRoster(ctx context.Context) ([]domain.Resident, error) {
	var body rosterResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/directory/api/v1/roster")
	if err != nil {
		return nil, fmt.Errorf("failed to call directory service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("directory service returned status %d", resp.StatusCode())
	}
	if body.Code != 2000 {
		return nil, fmt.Errorf("directory service error: %s", body.Message)
	}

	c.logger.Debug("Fetched roster from directory service",
		zap.Int("resident_count", len(body.Result)),
	)

	return body.Result, nil
}
