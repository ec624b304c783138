package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/control"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ====================================================================================
// Session Management Server

/*
BuildSessionManagementServer create session management API server.

The server carries both the operator facing live session API and the external
encoder live state callback endpoint.

	@param httpCfg common.APIServerConfig - HTTP server configuration
	@param authConfig common.CallbackAuthConfig - callback request auth settings
	@param manager control.SessionManager - core session manager
	@returns HTTP server instance
*/
func BuildSessionManagementServer(
	httpCfg common.APIServerConfig,
	authConfig common.CallbackAuthConfig,
	manager control.SessionManager,
) (*http.Server, error) {
	httpHandler, err := NewSessionManagerHandler(manager, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}
	callbackHandler, err := NewLiveStateCallbackHandler(
		manager, authConfig, httpCfg.APIs.RequestLogging,
	)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": httpHandler.AliveHandler(),
	})
	_ = registerPathPrefix(v1Router, "/ready", map[string]http.HandlerFunc{
		"get": httpHandler.ReadyHandler(),
	})

	// --------------------------------------------------------------------------------
	// Live session
	sessionRouter := registerPathPrefix(v1Router, "/session", map[string]http.HandlerFunc{
		"post": httpHandler.DefineNewLiveSessionHandler(),
		"get":  httpHandler.ListLiveSessionsHandler(),
	})

	perSessionRouter := registerPathPrefix(
		sessionRouter, "/{sessionID}", map[string]http.HandlerFunc{
			"get":    httpHandler.GetLiveSessionHandler(),
			"delete": httpHandler.DeleteLiveSessionHandler(),
		},
	)

	_ = registerPathPrefix(perSessionRouter, "/provision", map[string]http.HandlerFunc{
		"post": httpHandler.ProvisionLiveStreamHandler(),
	})

	_ = registerPathPrefix(perSessionRouter, "/start", map[string]http.HandlerFunc{
		"post": httpHandler.StartLiveStreamHandler(),
	})

	// --------------------------------------------------------------------------------
	// External encoder callback
	apiRouter := registerPathPrefix(mainRouter, "/api", nil)
	_ = registerPathPrefix(apiRouter, "/update-live-state", map[string]http.HandlerFunc{
		"post": callbackHandler.UpdateLiveStateHandler(),
	})

	// --------------------------------------------------------------------------------
	// Middleware

	router.Use(func(next http.Handler) http.Handler {
		return httpHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}

	return httpSrv, nil
}

// ====================================================================================
// Metrics Server

/*
BuildMetricsServer create Prometheus metrics server

	@param httpCfg common.HTTPServerConfig - HTTP server configuration
	@param metricsHandler http.Handler - metrics endpoint handler
	@param metricsPath string - metrics endpoint path
	@returns HTTP server instance
*/
func BuildMetricsServer(
	httpCfg common.HTTPServerConfig, metricsHandler http.Handler, metricsPath string,
) (*http.Server, error) {
	router := mux.NewRouter()
	router.Path(metricsPath).Methods("get").Handler(metricsHandler)

	serverListen := fmt.Sprintf("%s:%d", httpCfg.ListenOn, httpCfg.Port)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Timeouts.IdleTimeout),
		Handler:      router,
	}

	return httpSrv, nil
}
