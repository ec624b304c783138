package db

import (
	"github.com/mediamesh/livecast/common"
)

// liveSession a single live video session entry
type liveSession struct {
	common.LiveSession
	// ResourcesRaw serialized StreamResources descriptor. Null until the
	// session's stream stack is provisioned.
	ResourcesRaw *string `gorm:"column:resources;default:null"`
}

// TableName hard code table name
func (liveSession) TableName() string {
	return "live_sessions"
}
