package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/control"
	"gorm.io/gorm"
)

// LiveStateCallbackHandler REST API handler receiving live state reports from
// external encoders
type LiveStateCallbackHandler struct {
	goutils.RestAPIHandler
	validate        *validator.Validate
	manager         control.SessionManager
	signatureHeader string
	sharedSecrets   []string
}

/*
NewLiveStateCallbackHandler define a new live state callback REST API handler

	@param manager control.SessionManager - core session manager
	@param authConfig common.CallbackAuthConfig - callback request auth settings
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new LiveStateCallbackHandler
*/
func NewLiveStateCallbackHandler(
	manager control.SessionManager,
	authConfig common.CallbackAuthConfig,
	logConfig common.HTTPRequestLogging,
) (LiveStateCallbackHandler, error) {
	if len(authConfig.SharedSecrets) == 0 {
		return LiveStateCallbackHandler{}, fmt.Errorf(
			"no shared secrets available for callback signature verification",
		)
	}
	return LiveStateCallbackHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "live-state-callback-handler"},
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
		},
		validate:        validator.New(),
		manager:         manager,
		signatureHeader: authConfig.SignatureHeader,
		sharedSecrets:   authConfig.SharedSecrets,
	}, nil
}

// LiveStateUpdateRequest live state report from an external encoder
type LiveStateUpdateRequest struct {
	Key   string `json:"key" validate:"required"`
	State string `json:"state" validate:"required,oneof=live stopped"`
}

// verifySignature check the request signature against each known shared secret.
// The signature is the hex encoded HMAC-SHA256 of the raw request body. Multiple
// secrets are accepted so secret rotation does not drop in-flight reports.
func (h LiveStateCallbackHandler) verifySignature(signature string, payload []byte) bool {
	for _, secret := range h.sharedSecrets {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		expected := hex.EncodeToString(mac.Sum(nil))
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return true
		}
	}
	return false
}

// UpdateLiveState godoc
// @Summary Report live session state
// @Description Accept a live state report from an external encoder. The request
// body must be signed with one of the configured shared secrets.
// @tags callback
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param param body LiveStateUpdateRequest true "Live state report"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /api/update-live-state [post]
func (h LiveStateCallbackHandler) UpdateLiveState(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	if r.Body == nil {
		msg := "no payload provided with live state report"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	// The signature covers the raw bytes, so read the body before parsing
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		msg := "unable to read live state report payload"
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

	// Verify request signature
	signature := r.Header.Get(h.signatureHeader)
	if !h.verifySignature(signature, payload) {
		msg := "live state report signature verification failed"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusForbidden
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusForbidden, msg, msg)
		return
	}

	// Parse the report
	var params LiveStateUpdateRequest
	if err := json.Unmarshal(payload, &params); err != nil {
		msg := "unable to parse live state report"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	// Only `live` and `stopped` may be reported from outside
	if err := h.validate.Struct(&params); err != nil {
		msg := "invalid value for state"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	if err := h.manager.UpdateLiveState(
		r.Context(), params.Key, common.LiveState(params.State),
	); err != nil {
		msg := "failed to apply live state report"
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

// UpdateLiveStateHandler Wrapper around UpdateLiveState
func (h LiveStateCallbackHandler) UpdateLiveStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.UpdateLiveState(w, r)
	}
}
