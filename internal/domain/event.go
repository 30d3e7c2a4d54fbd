package domain

import "buglog/internal/jsonstr"

// Event is one client-reported bug/telemetry record. ID and IP are always
// assigned by the server.
type Event struct {
	ID         string        `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AppVersion *string       `gorm:"column:app_version;type:varchar(64)" json:"appVersion"`
	AppKey     *string       `gorm:"column:app_key;type:varchar(255)" json:"appKey"`
	Version    *string       `gorm:"column:version;type:varchar(64)" json:"version"`
	UserAgent  *string       `gorm:"column:user_agent;type:text" json:"userAgent"`
	Locale     *string       `gorm:"column:locale;type:varchar(32)" json:"locale"`
	URL        *string       `gorm:"column:url;type:text" json:"url"`
	Title      *string       `gorm:"column:title;type:text" json:"title"`
	Time       *int64        `gorm:"column:time" json:"time"`
	BugType    *string       `gorm:"column:bug_type;type:varchar(64)" json:"type"`
	Detail     jsonstr.Value `gorm:"column:detail" json:"detail"`
	ActionInfo jsonstr.Value `gorm:"column:action_info" json:"actionInfo"`
	Custom     jsonstr.Value `gorm:"column:custom" json:"custom"`
	IP         *string       `gorm:"column:ip;type:varchar(64)" json:"ip"`
	EventCount *int32        `gorm:"column:event_count" json:"eventCount"`
	Status     *string       `gorm:"column:status;type:varchar(32)" json:"status"`
}

func (Event) TableName() string { return "bug_log" }
