package common

import (
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
)

// ===============================================================================
// Common Submodule Config

// HTTPServerTimeoutConfig defines the timeout settings for HTTP server
type HTTPServerTimeoutConfig struct {
	// ReadTimeout is the maximum duration for reading the entire
	// request, including the body in seconds. A zero or negative
	// value means there will be no timeout.
	ReadTimeout int `mapstructure:"read" json:"read" validate:"gte=0"`
	// WriteTimeout is the maximum duration before timing out
	// writes of the response in seconds. A zero or negative value
	// means there will be no timeout.
	WriteTimeout int `mapstructure:"write" json:"write" validate:"gte=0"`
	// IdleTimeout is the maximum amount of time to wait for the
	// next request when keep-alives are enabled in seconds. If
	// IdleTimeout is zero, the value of ReadTimeout is used. If
	// both are zero, there is no timeout.
	IdleTimeout int `mapstructure:"idle" json:"idle" validate:"gte=0"`
}

// HTTPServerConfig defines the HTTP server parameters
type HTTPServerConfig struct {
	// ListenOn is the interface the HTTP server will listen on
	ListenOn string `mapstructure:"listenOn" json:"listenOn" validate:"required,ip"`
	// Port is the port the HTTP server will listen on
	Port uint16 `mapstructure:"appPort" json:"appPort" validate:"required,gt=0,lt=65536"`
	// Timeouts sets the HTTP timeout settings
	Timeouts HTTPServerTimeoutConfig `mapstructure:"timeoutSecs" json:"timeoutSecs" validate:"required,dive"`
}

// HTTPRequestLogging defines HTTP request logging parameters
type HTTPRequestLogging struct {
	// LogLevel output request logs at this level
	LogLevel goutils.HTTPRequestLogLevel `mapstructure:"logLevel" json:"logLevel" validate:"oneof=warn info debug"`
	// HealthLogLevel output health check logs at this level
	HealthLogLevel goutils.HTTPRequestLogLevel `mapstructure:"healthLogLevel" json:"healthLogLevel" validate:"oneof=warn info debug"`
	// RequestIDHeader is the HTTP header containing the API request ID
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader"`
	// DoNotLogHeaders is the list of headers to not include in logging metadata
	DoNotLogHeaders []string `mapstructure:"skipHeaders" json:"skipHeaders"`
}

// EndpointConfig defines API endpoint config
type EndpointConfig struct {
	// PathPrefix is the end-point path prefix for the APIs
	PathPrefix string `mapstructure:"pathPrefix" json:"pathPrefix" validate:"required"`
}

// APIConfig defines API settings for a submodule
type APIConfig struct {
	// Endpoint sets API endpoint related parameters
	Endpoint EndpointConfig `mapstructure:"endPoint" json:"endPoint" validate:"required,dive"`
	// RequestLogging sets API request logging parameters
	RequestLogging HTTPRequestLogging `mapstructure:"requestLogging" json:"requestLogging" validate:"required,dive"`
}

// APIServerConfig defines HTTP API / server parameters
type APIServerConfig struct {
	// Enabled whether this API is enabled
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required_with=Enabled,dive"`
	// APIs defines API settings for a submodule
	APIs APIConfig `mapstructure:"apis" json:"apis" validate:"required_with=Enabled,dive"`
}

// MetricsConfig application metrics config
type MetricsConfig struct {
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required,dive"`
	// MetricsEndpoint path to host the Prometheus metrics endpoint
	MetricsEndpoint string `mapstructure:"metricsEndpoint" json:"metricsEndpoint" validate:"required"`
}

// ===============================================================================
// Persistence Configuration Structures

// PostgresSSLConfig Postgres connection SSL config
type PostgresSSLConfig struct {
	// Enabled whether to enable SSL when connecting to Postgres
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// CAFile the CA cert file to challenge remote with
	CAFile *string `mapstructure:"caFile" json:"caFile,omitempty" validate:"omitempty,file"`
}

// PostgresConfig Postgres connection config
type PostgresConfig struct {
	// Host Postgres server host
	Host string `mapstructure:"host" json:"host" validate:"required"`
	// Port Postgres server port
	Port uint16 `mapstructure:"port" json:"port" validate:"lte=65535,gte=0"`
	// Database the specific database to use
	Database string `mapstructure:"db" json:"db" validate:"required"`
	// User the user to connect with
	User string `mapstructure:"user" json:"user" validate:"required"`
	// SSL the connection SSL settings
	SSL PostgresSSLConfig `mapstructure:"ssl" json:"ssl" validate:"required,dive"`
}

// SqliteConfig sqlite config
type SqliteConfig struct {
	// DBFile the sqlite DB file path
	DBFile string `mapstructure:"db" json:"db" validate:"required"`
}

// DatabaseConfig session record persistence config.
//
// Exactly one backend is expected. Postgres takes priority if both are given.
type DatabaseConfig struct {
	// Postgres postgres DB configuration
	Postgres *PostgresConfig `mapstructure:"postgres,omitempty" json:"postgres,omitempty" validate:"omitempty,dive"`
	// Sqlite sqlite DB configuration
	Sqlite *SqliteConfig `mapstructure:"sqlite,omitempty" json:"sqlite,omitempty" validate:"omitempty,dive"`
}

// ===============================================================================
// Cloud Provider Configuration Structures

// AWSConfig AWS provider client config
type AWSConfig struct {
	// Region the AWS region all provider clients operate in
	Region string `mapstructure:"region" json:"region" validate:"required"`
}

// MediaLiveConfig encoding service config
type MediaLiveConfig struct {
	// RoleARN the service role identity MediaLive assumes when pushing output
	// to the packaging channel
	RoleARN string `mapstructure:"roleArn" json:"roleArn" validate:"required"`
}

// EncoderProfileConfig encoder profile store config
type EncoderProfileConfig struct {
	// ProfileDir directory holding the encoder profile JSON documents
	ProfileDir string `mapstructure:"profileDir" json:"profileDir" validate:"required,dir"`
	// DefaultProfile the profile used when provisioning encoding channels.
	// Only "720p" ships with the system.
	DefaultProfile string `mapstructure:"defaultProfile" json:"defaultProfile" validate:"required"`
}

// ===============================================================================
// Live State Callback Configuration Structures

// CallbackAuthConfig live state callback authentication config
type CallbackAuthConfig struct {
	// SignatureHeader the HTTP header carrying the HMAC signature of the request body
	SignatureHeader string `mapstructure:"signatureHeader" json:"signatureHeader" validate:"required"`
	// SharedSecrets ordered list of rotating shared secrets. A callback is
	// accepted if its signature matches any one of them. Injected via CLI,
	// never read from the config file.
	SharedSecrets []string `mapstructure:"-" json:"-" validate:"required,gte=1"`
}

// ===============================================================================
// Complete Configuration Structures

// SessionManagementConfig session management sub-module config
type SessionManagementConfig struct {
	// APIServer management REST API server config
	APIServer APIServerConfig `mapstructure:"api" json:"api" validate:"required,dive"`
	// Callback live state callback authentication config
	Callback CallbackAuthConfig `mapstructure:"callback" json:"callback" validate:"required,dive"`
}

// ServerNodeConfig define server node settings and behavior
type ServerNodeConfig struct {
	// Metrics metrics framework configuration
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" validate:"required,dive"`
	// Database session record persistence configuration
	Database DatabaseConfig `mapstructure:"database" json:"database" validate:"required,dive"`
	// AWS AWS provider client configuration
	AWS AWSConfig `mapstructure:"aws" json:"aws" validate:"required,dive"`
	// MediaLive encoding service configuration
	MediaLive MediaLiveConfig `mapstructure:"medialive" json:"medialive" validate:"required,dive"`
	// EncoderProfiles encoder profile store configuration
	EncoderProfiles EncoderProfileConfig `mapstructure:"encoderProfiles" json:"encoderProfiles" validate:"required,dive"`
	// Management session management sub-module configuration
	Management SessionManagementConfig `mapstructure:"management" json:"management" validate:"required,dive"`
}

// ===============================================================================
// Default Configuration Setter

// InstallDefaultServerNodeConfigValues installs default config parameters in viper
// for the server node
func InstallDefaultServerNodeConfigValues() {
	// Default metrics config
	viper.SetDefault("metrics.metricsEndpoint", "/metrics")
	// Default metrics HTTP server config
	viper.SetDefault("metrics.service.listenOn", "0.0.0.0")
	viper.SetDefault("metrics.service.appPort", 3001)
	viper.SetDefault("metrics.service.timeoutSecs.read", 60)
	viper.SetDefault("metrics.service.timeoutSecs.write", 60)
	viper.SetDefault("metrics.service.timeoutSecs.idle", 60)

	// Default sqlite config
	viper.SetDefault("database.sqlite.db", fmt.Sprintf("/tmp/livecast-%s.db", ulid.Make().String()))

	// Default encoder profile config
	viper.SetDefault("encoderProfiles.defaultProfile", "720p")

	// Default management sub-component
	// Default management HTTP server config
	viper.SetDefault("management.api.enabled", true)
	viper.SetDefault("management.api.service.listenOn", "0.0.0.0")
	viper.SetDefault("management.api.service.appPort", 8080)
	viper.SetDefault("management.api.service.timeoutSecs.read", 60)
	viper.SetDefault("management.api.service.timeoutSecs.write", 60)
	viper.SetDefault("management.api.service.timeoutSecs.idle", 60)
	viper.SetDefault("management.api.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("management.api.apis.requestLogging.logLevel", "warn")
	viper.SetDefault("management.api.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("management.api.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("management.api.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})

	// Default callback config
	viper.SetDefault("management.callback.signatureHeader", "X-Livecast-Signature")
}
