package util

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
)

const sensBaseURL = "https://sens.apigw.ntruss.com"

// SMSSender delivers one-time codes to a phone number.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

type sensMessageRequest struct {
	Type     string        `json:"type"`
	From     string        `json:"from"`
	Content  string        `json:"content"`
	Messages []sensMessage `json:"messages"`
}

type sensMessage struct {
	To string `json:"to"`
}

// SENSSender talks to the Naver Cloud SENS SMS API. With incomplete
// credentials it only logs the code (development mode).
type SENSSender struct {
	cfg     config.SMSConfig
	baseURL string
	client  *http.Client
}

func NewSENSSender(cfg config.SMSConfig) *SENSSender {
	return &SENSSender{
		cfg:     cfg,
		baseURL: sensBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SENSSender) devMode() bool {
	return s.cfg.ServiceID == "" || s.cfg.AccessKey == "" || s.cfg.SecretKey == "" || s.cfg.FromNumber == ""
}

func (s *SENSSender) SendOTP(ctx context.Context, phone, code string) error {
	if s.devMode() {
		logger.Warn("SMS gateway not configured, OTP not sent", map[string]interface{}{
			"phone": phone,
			"code":  code,
		})
		return nil
	}

	body, err := json.Marshal(sensMessageRequest{
		Type:     "SMS",
		From:     s.cfg.FromNumber,
		Content:  fmt.Sprintf("[fodz] Your verification code is %s", code),
		Messages: []sensMessage{{To: phone}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	uri := fmt.Sprintf("/sms/v2/services/%s/messages", s.cfg.ServiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+uri, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-ncp-apigw-timestamp", timestamp)
	req.Header.Set("x-ncp-iam-access-key", s.cfg.AccessKey)
	req.Header.Set("x-ncp-apigw-signature-v2", sensSignature(http.MethodPost, uri, timestamp, s.cfg.AccessKey, s.cfg.SecretKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(respBody))
	}

	logger.Info("OTP SMS sent", map[string]interface{}{
		"phone": phone,
	})
	return nil
}

func sensSignature(method, uri, timestamp, accessKey, secretKey string) string {
	message := method + " " + uri + "\n" + timestamp + "\n" + accessKey
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
