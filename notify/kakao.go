package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// KakaoClient talks to the Kakao REST API. Only two calls are used: the
// token-bearer user lookup (OAuth login) and the admin-key message push.
type KakaoClient struct {
	BaseURL  string
	AdminKey string
	HTTP     *http.Client
}

func NewKakaoClient(baseURL, adminKey string) *KakaoClient {
	return &KakaoClient{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		AdminKey: adminKey,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// KakaoUser is the slice of /v2/user/me we care about.
type KakaoUser struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// Me resolves the Kakao account behind a user-supplied access token.
func (c *KakaoClient) Me(ctx context.Context, accessToken string) (*KakaoUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v2/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kakao user lookup: status %d: %s", resp.StatusCode, body)
	}
	var u KakaoUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SendMessage pushes a default-template text message to one Kakao user id
// using the app admin key. Delivery failures are the caller's problem to
// log, never to propagate.
func (c *KakaoClient) SendMessage(ctx context.Context, kakaoID, text string) error {
	if c.AdminKey == "" {
		return fmt.Errorf("kakao admin key not configured")
	}
	tmpl, err := json.Marshal(map[string]any{
		"object_type": "text",
		"text":        text,
		"link":        map[string]any{},
	})
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("receiver_uuids", `["`+kakaoID+`"]`)
	form.Set("template_object", string(tmpl))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/api/talk/friends/message/default/send",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.AdminKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("kakao send: status %d: %s", resp.StatusCode, body)
	}
	return nil
}
