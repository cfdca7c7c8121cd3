// Package metadata 提供请求上下文中调用方身份的存取工具，供控制器与服务层共享。
package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrUserInfoDecode 表示网关注入的 userinfo 无法解码。
var ErrUserInfoDecode = errors.New("decode userinfo header failed")

// userIDClaims 按优先级列出可作为用户标识的 claim。
var userIDClaims = []string{"sub", "user_id", "uid"}

// HandlerMetadata 描述从请求头解析出的调用方信息。
type HandlerMetadata struct {
	IdempotencyKey  string
	UserID          string
	RawUserInfo     string
	InvalidUserInfo bool
}

// IsZero 判断 Metadata 是否为空。
func (m HandlerMetadata) IsZero() bool {
	return m.IdempotencyKey == "" && m.UserID == "" && m.RawUserInfo == "" && !m.InvalidUserInfo
}

// UserUUID 尝试解析 user_id 为 UUID；资料库中的所有文档都以 UUID 归属用户。
func (m HandlerMetadata) UserUUID() (uuid.UUID, bool) {
	if m.InvalidUserInfo || strings.TrimSpace(m.UserID) == "" {
		return uuid.Nil, false
	}
	value, err := uuid.Parse(m.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return value, true
}

// FromUserInfo 由原始 userinfo 头构造 Metadata；解析失败时标记 InvalidUserInfo 而不是报错。
func FromUserInfo(rawUserInfo, idempotencyKey string) HandlerMetadata {
	meta := HandlerMetadata{
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
		RawUserInfo:    strings.TrimSpace(rawUserInfo),
	}
	if meta.RawUserInfo == "" {
		return meta
	}
	userID, err := ExtractUserIDFromUserInfo(meta.RawUserInfo)
	if err != nil || strings.TrimSpace(userID) == "" {
		meta.InvalidUserInfo = true
		return meta
	}
	meta.UserID = userID
	return meta
}

type ctxKey struct{}

// Inject 将 HandlerMetadata 注入 Context。
func Inject(ctx context.Context, meta HandlerMetadata) context.Context {
	if meta.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, meta)
}

// FromContext 读取上游注入的 HandlerMetadata。
func FromContext(ctx context.Context) (HandlerMetadata, bool) {
	if ctx == nil {
		return HandlerMetadata{}, false
	}
	meta, ok := ctx.Value(ctxKey{}).(HandlerMetadata)
	return meta, ok
}

// ExtractUserIDFromUserInfo 从 X-Apigateway-Api-Userinfo 头（base64 JSON）中解析用户标识。
func ExtractUserIDFromUserInfo(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	payload, err := decodeUserInfo(raw)
	if err != nil {
		return "", err
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", err
	}
	for _, key := range userIDClaims {
		if value, ok := claims[key].(string); ok && strings.TrimSpace(value) != "" {
			return value, nil
		}
	}
	return "", nil
}

func decodeUserInfo(raw string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.RawURLEncoding, base64.URLEncoding, base64.StdEncoding} {
		if payload, err := enc.DecodeString(raw); err == nil {
			return payload, nil
		}
	}
	return nil, ErrUserInfoDecode
}
