package common

import (
	"time"
)

// LiveState live video session state
type LiveState string

// Live session states. A session starts at `idle`, moves to `starting` when the
// encoding channel is activated, and is driven between `live` and `stopped` by
// state callbacks from the managed encoder.
const (
	LiveStateIdle     LiveState = "idle"
	LiveStateStarting LiveState = "starting"
	LiveStateLive     LiveState = "live"
	LiveStateStopped  LiveState = "stopped"
)

// LiveSession a single live video session managed by the system
type LiveSession struct {
	// ID session entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// Key opaque stream key. Every provisioned cloud resource is named after it.
	Key string `json:"key" gorm:"column:key;not null;uniqueIndex:live_session_key_index" validate:"required"`
	// Title an optional human readable session title
	Title *string `json:"title,omitempty" gorm:"column:title;default:null"`
	// LiveState current live state of the session
	LiveState LiveState `json:"live_state" gorm:"column:live_state;not null" validate:"required,oneof=idle starting live stopped"`
	// Resources cloud resources provisioned for this session. Nil until the
	// stream stack is provisioned.
	Resources *StreamResources `json:"resources,omitempty" gorm:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ===============================================================================
// Provisioned Stream Resource Descriptor

// StreamResources descriptor of all cloud resources backing one live stream.
//
// This is the only state returned by the stream provisioner. Callers persist
// it alongside the session record.
type StreamResources struct {
	// MediaLive encoding service resources
	MediaLive MediaLiveResources `json:"medialive" validate:"required,dive"`
	// MediaPackage packaging / distribution service resources
	MediaPackage MediaPackageResources `json:"mediapackage" validate:"required,dive"`
}

// MediaLiveResources encoding service side of a provisioned stream
type MediaLiveResources struct {
	// Input the ingest input feeding the encoding channel
	Input MediaLiveInput `json:"input" validate:"required,dive"`
	// Channel the encoding channel
	Channel MediaLiveChannel `json:"channel" validate:"required,dive"`
}

// MediaLiveInput ingest input parameters
type MediaLiveInput struct {
	// ID input ID
	ID string `json:"id" validate:"required"`
	// Endpoints the public push URLs the source encoder streams to, primary first
	Endpoints []string `json:"endpoints" validate:"required,len=2"`
}

// MediaLiveChannel encoding channel parameters
type MediaLiveChannel struct {
	// ID channel ID
	ID string `json:"id" validate:"required"`
}

// MediaPackageResources packaging service side of a provisioned stream
type MediaPackageResources struct {
	// Channel the packaging channel
	Channel MediaPackageChannel `json:"channel" validate:"required,dive"`
	// Endpoints the client facing distribution endpoints
	Endpoints DistributionEndpoints `json:"endpoints" validate:"required,dive"`
}

// MediaPackageChannel packaging channel parameters
type MediaPackageChannel struct {
	// ID channel ID
	ID string `json:"id" validate:"required"`
}

// DistributionEndpoints the two distribution endpoints of a packaging channel
type DistributionEndpoints struct {
	// CMAF segmented container format endpoint
	CMAF DistributionEndpoint `json:"cmaf" validate:"required,dive"`
	// DASH adaptive bitrate XML manifest endpoint
	DASH DistributionEndpoint `json:"dash" validate:"required,dive"`
}

// DistributionEndpoint a single client playable manifest endpoint
type DistributionEndpoint struct {
	// ID endpoint ID
	ID string `json:"id" validate:"required"`
	// URL playable manifest URL
	URL string `json:"url" validate:"required,url"`
}
