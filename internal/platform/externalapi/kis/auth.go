package kis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	tokenusecase "kis_backend/internal/feature/token/usecase"
	"kis_backend/internal/platform/externalapi/kis/dto"
)

// KISAuth issues bearer tokens from the KIS /oauth2/tokenP endpoint.
type KISAuth struct {
	cfg    Config
	client *http.Client
}

// Compile-time check to ensure KISAuth implements AuthRepository.
var _ tokenusecase.AuthRepository = (*KISAuth)(nil)

// NewKISAuth creates a KISAuth with the given configuration and HTTP client.
func NewKISAuth(cfg Config, client *http.Client) *KISAuth {
	return &KISAuth{cfg: cfg, client: client}
}

// IssueToken requests a fresh bearer token. There is no retry here: the
// upstream allows one issuance per day, so a failed call surfaces immediately.
func (a *KISAuth) IssueToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type": "client_credentials",
		"appkey":     a.cfg.AppKey,
		"appsecret":  a.cfg.AppSecret,
	})
	if err != nil {
		return "", err
	}

	u := a.cfg.BaseURL + "/oauth2/tokenP"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", &StatusError{Code: res.StatusCode, Body: string(msg)}
	}

	var tr dto.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("kis auth: empty access_token in response")
	}
	return tr.AccessToken, nil
}
