package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/logging"
)

// CaptchaVerifier checks a client CAPTCHA token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type captchaVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// HTTPCaptchaVerifier calls a siteverify-style endpoint and requires a
// successful response scoring at least MinScore.
type HTTPCaptchaVerifier struct {
	VerifyURL string
	Secret    string
	MinScore  float64
	Client    *http.Client
}

func NewHTTPCaptchaVerifier(cfg config.CaptchaConfig) *HTTPCaptchaVerifier {
	return &HTTPCaptchaVerifier{
		VerifyURL: cfg.VerifyURL,
		Secret:    cfg.Secret,
		MinScore:  cfg.MinScore,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (v *HTTPCaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return constants.ErrCaptchaFailed
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read captcha response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha verify returned status %d", resp.StatusCode)
	}

	var result captchaVerifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	logging.Debug("Captcha assessed", "success", result.Success, "score", result.Score, "errors", result.ErrorCodes)
	if !result.Success || result.Score < v.MinScore {
		return constants.ErrCaptchaFailed
	}
	return nil
}
