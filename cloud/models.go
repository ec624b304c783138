package cloud

import "encoding/json"

// InputSecurityGroup a network access control resource attached to ingest inputs
type InputSecurityGroup struct {
	// ID security group ID
	ID string `json:"id" validate:"required"`
	// Tags resource tag set
	Tags map[string]string `json:"tags"`
}

// IngestEndpoint one credentialed ingest endpoint of a packaging channel
type IngestEndpoint struct {
	// ID endpoint ID
	ID string `json:"id"`
	// URL endpoint ingest URL
	URL string `json:"url" validate:"required,url"`
	// Username ingest username. Doubles as the secret store entry name for
	// the associated password.
	Username string `json:"username" validate:"required"`
	// Password ingest password
	Password string `json:"password" validate:"required"`
}

// PackagingChannel a packaging service channel
type PackagingChannel struct {
	// ID channel ID
	ID string `json:"id" validate:"required"`
	// IngestEndpoints the channel's ingest endpoints, primary first
	IngestEndpoints []IngestEndpoint `json:"ingest_endpoints" validate:"required,len=2,dive"`
}

// OriginEndpoint a distribution endpoint created on a packaging channel
type OriginEndpoint struct {
	// ID endpoint ID
	ID string `json:"id" validate:"required"`
	// URL client playable manifest URL
	URL string `json:"url" validate:"required,url"`
}

// InputDestination one destination address of a push input
type InputDestination struct {
	// URL public push URL the source encoder streams to
	URL string `json:"url"`
}

// PushInput an ingest input accepting an inbound RTMP class stream
type PushInput struct {
	// ID input ID
	ID string `json:"id" validate:"required"`
	// Destinations the input's destination addresses, primary first
	Destinations []InputDestination `json:"destinations" validate:"required,len=2,dive"`
}

// EncodingChannel an encoding / transcoding channel
type EncodingChannel struct {
	// ID channel ID
	ID string `json:"id" validate:"required"`
}

// EncodingDestination one sink of an encoding channel.
//
// PasswordParam is the name of a secret store entry holding the password. The
// password itself never appears in an encoding channel request.
type EncodingDestination struct {
	// URL packaging channel ingest URL to push encoded output to
	URL string `json:"url" validate:"required,url"`
	// Username ingest username
	Username string `json:"username" validate:"required"`
	// PasswordParam secret store entry name holding the ingest password
	PasswordParam string `json:"password_param" validate:"required"`
}

// EncodingChannelRequest parameters for creating an encoding channel
type EncodingChannelRequest struct {
	// Name channel name
	Name string `json:"name" validate:"required"`
	// InputID ID of the ingest input to attach as source
	InputID string `json:"input_id" validate:"required"`
	// Destinations the credentialed packaging ingest endpoints to push to
	Destinations []EncodingDestination `json:"destinations" validate:"required,len=2,dive"`
	// RoleARN service role identity the encoding service assumes
	RoleARN string `json:"role_arn" validate:"required"`
	// EncoderSettings opaque encoder profile document, passed through verbatim
	EncoderSettings json.RawMessage `json:"encoder_settings" validate:"required"`
}
