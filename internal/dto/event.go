package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"buglog/internal/domain"
	"buglog/internal/jsonstr"
)

// EventPayload is what clients send in the event query parameter. It has no
// id or ip fields; those are always assigned by the server.
type EventPayload struct {
	AppVersion *string       `json:"appVersion"`
	AppKey     *string       `json:"appKey"`
	Version    *string       `json:"version"`
	UserAgent  *string       `json:"userAgent"`
	Locale     *string       `json:"locale"`
	URL        *string       `json:"url"`
	Title      *string       `json:"title"`
	Time       *int64        `json:"time"`
	Type       *string       `json:"type"`
	BugType    *string       `json:"bugType"`
	Detail     jsonstr.Value `json:"detail"`
	ActionInfo jsonstr.Value `json:"actionInfo"`
	Custom     jsonstr.Value `json:"custom"`
	EventCount *int32        `json:"eventCount"`
	Status     *string       `json:"status"`
}

// DecodeEvent parses the raw event parameter. Failures wrap domain.ErrDecode.
func DecodeEvent(raw string) (EventPayload, error) {
	var p EventPayload
	if strings.TrimSpace(raw) == "" {
		return p, fmt.Errorf("%w: missing event parameter", domain.ErrDecode)
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return EventPayload{}, fmt.Errorf("%w: invalid event: %v", domain.ErrDecode, err)
	}
	return p, nil
}

// ToEvent builds the row to persist. id and ip replace anything the client sent.
func (p EventPayload) ToEvent(id, ip string) *domain.Event {
	bugType := p.Type
	if bugType == nil {
		bugType = p.BugType
	}
	return &domain.Event{
		ID:         id,
		AppVersion: p.AppVersion,
		AppKey:     p.AppKey,
		Version:    p.Version,
		UserAgent:  p.UserAgent,
		Locale:     p.Locale,
		URL:        p.URL,
		Title:      p.Title,
		Time:       p.Time,
		BugType:    bugType,
		Detail:     p.Detail,
		ActionInfo: p.ActionInfo,
		Custom:     p.Custom,
		IP:         &ip,
		EventCount: p.EventCount,
		Status:     p.Status,
	}
}
