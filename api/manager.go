package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/control"
	"gorm.io/gorm"
)

// SessionManagerHandler REST API interface to SessionManager
type SessionManagerHandler struct {
	goutils.RestAPIHandler
	validate *validator.Validate
	manager  control.SessionManager
}

/*
NewSessionManagerHandler define a new session manager REST API handler

	@param manager control.SessionManager - core session manager
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new SessionManagerHandler
*/
func NewSessionManagerHandler(
	manager control.SessionManager, logConfig common.HTTPRequestLogging,
) (SessionManagerHandler, error) {
	return SessionManagerHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "session-manager-handler"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &logConfig.RequestIDHeader,
			DoNotLogHeaders: func() map[string]bool {
				result := map[string]bool{}
				for _, v := range logConfig.DoNotLogHeaders {
					result[v] = true
				}
				return result
			}(),
			LogLevel: logConfig.LogLevel,
		}, validate: validator.New(), manager: manager,
	}, nil
}

// ====================================================================================
// Live Session CRUD

// NewLiveSessionRequest parameters to define a new live session
type NewLiveSessionRequest struct {
	Key   string  `json:"key" validate:"required"`
	Title *string `json:"title,omitempty"`
}

// LiveSessionInfoResponse response containing information for one live session
type LiveSessionInfoResponse struct {
	goutils.RestAPIBaseResponse
	// Session the live session info
	Session common.LiveSession `json:"session" validate:"required,dive"`
}

// DefineNewLiveSession godoc
// @Summary Define a new live session
// @Description Define a new live session within the system.
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param param body NewLiveSessionRequest true "Live session parameters"
// @Success 200 {object} LiveSessionInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session [post]
func (h SessionManagerHandler) DefineNewLiveSession(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	if r.Body == nil {
		msg := "no payload provided to define new live session"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	// Parse the create parameters
	var params NewLiveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse new live session parameters from request"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithError(err).WithFields(logTags).Error("Request body close error")
		}
	}()

	// Validate parameters
	if err := h.validate.Struct(&params); err != nil {
		msg := "missing required values to define new live session"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	// Define the live session
	entryID, err := h.manager.DefineLiveSession(r.Context(), params.Key, params.Title)
	if err != nil {
		msg := "failed to define new live session"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	// Read back the live session
	entry, err := h.manager.GetLiveSession(r.Context(), entryID)
	if err != nil {
		msg := "failed to read back the new live session entry"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	// Return new live session
	respCode = http.StatusOK
	response = LiveSessionInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Session: entry,
	}
}

// DefineNewLiveSessionHandler Wrapper around DefineNewLiveSession
func (h SessionManagerHandler) DefineNewLiveSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DefineNewLiveSession(w, r)
	}
}

// ------------------------------------------------------------------------------------

// LiveSessionInfoListResponse response containing list of live sessions
type LiveSessionInfoListResponse struct {
	goutils.RestAPIBaseResponse
	// Sessions list of live session infos
	Sessions []common.LiveSession `json:"sessions" validate:"required,gte=1,dive"`
}

// ListLiveSessions godoc
// @Summary List known live sessions
// @Description Fetch list of known live sessions in the system
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} LiveSessionInfoListResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session [get]
func (h SessionManagerHandler) ListLiveSessions(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	entries, err := h.manager.ListLiveSessions(r.Context())
	if err != nil {
		msg := "failed to list known live sessions"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = LiveSessionInfoListResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Sessions: entries,
	}
}

// ListLiveSessionsHandler Wrapper around ListLiveSessions
func (h SessionManagerHandler) ListLiveSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListLiveSessions(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetLiveSession godoc
// @Summary Fetch live session
// @Description Fetch live session
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param sessionID path string true "Live session ID"
// @Success 200 {object} LiveSessionInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/{sessionID} [get]
func (h SessionManagerHandler) GetLiveSession(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	// Get session ID
	vars := mux.Vars(r)
	sessionID, ok := vars["sessionID"]
	if !ok {
		msg := "session ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	entry, err := h.manager.GetLiveSession(r.Context(), sessionID)
	if err != nil {
		msg := "failed to fetch live session"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respCode = http.StatusNotFound
		}
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = LiveSessionInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Session: entry,
	}
}

// GetLiveSessionHandler Wrapper around GetLiveSession
func (h SessionManagerHandler) GetLiveSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetLiveSession(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeleteLiveSession godoc
// @Summary Delete live session
// @Description Delete live session. Provisioned cloud resources are not removed.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param sessionID path string true "Live session ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/{sessionID} [delete]
func (h SessionManagerHandler) DeleteLiveSession(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	sessionID, ok := vars["sessionID"]
	if !ok {
		msg := "session ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	if err := h.manager.DeleteLiveSession(r.Context(), sessionID); err != nil {
		msg := "failed to delete live session"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// DeleteLiveSessionHandler Wrapper around DeleteLiveSession
func (h SessionManagerHandler) DeleteLiveSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteLiveSession(w, r)
	}
}

// ====================================================================================
// Stream Life Cycle

// ProvisionLiveStream godoc
// @Summary Provision the stream stack of a live session
// @Description Provision the cloud resource stack backing a live session. The
// resulting resource descriptor is recorded with the session.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param sessionID path string true "Live session ID"
// @Success 200 {object} LiveSessionInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/{sessionID}/provision [post]
func (h SessionManagerHandler) ProvisionLiveStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	sessionID, ok := vars["sessionID"]
	if !ok {
		msg := "session ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	entry, err := h.manager.ProvisionLiveStream(r.Context(), sessionID)
	if err != nil {
		msg := "failed to provision live stream stack"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respCode = http.StatusNotFound
		}
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = LiveSessionInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Session: entry,
	}
}

// ProvisionLiveStreamHandler Wrapper around ProvisionLiveStream
func (h SessionManagerHandler) ProvisionLiveStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ProvisionLiveStream(w, r)
	}
}

// ------------------------------------------------------------------------------------

// StartLiveStream godoc
// @Summary Start the stream of a live session
// @Description Start the encoding channel of a previously provisioned live session.
// The session moves to `starting` until the encoder reports `live`.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param sessionID path string true "Live session ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/{sessionID}/start [post]
func (h SessionManagerHandler) StartLiveStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	sessionID, ok := vars["sessionID"]
	if !ok {
		msg := "session ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	if err := h.manager.StartLiveStream(r.Context(), sessionID); err != nil {
		msg := "failed to start live stream"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respCode = http.StatusNotFound
		}
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// StartLiveStreamHandler Wrapper around StartLiveStream
func (h SessionManagerHandler) StartLiveStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.StartLiveStream(w, r)
	}
}

// ====================================================================================
// Utilities

// Alive godoc
// @Summary Session Manager API liveness check
// @Description Will return success to indicate session manager REST API module is live
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/alive [get]
func (h SessionManagerHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h SessionManagerHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}

// -----------------------------------------------------------------------

// Ready godoc
// @Summary Session Manager API readiness check
// @Description Will return success if session manager REST API module is ready for use
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/ready [get]
func (h SessionManagerHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()
	if err := h.manager.Ready(r.Context()); err != nil {
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(
			r.Context(), http.StatusInternalServerError, "not ready", err.Error(),
		)
	} else {
		respCode = http.StatusOK
		response = h.GetStdRESTSuccessMsg(r.Context())
	}
}

// ReadyHandler Wrapper around Ready
func (h SessionManagerHandler) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Ready(w, r)
	}
}
