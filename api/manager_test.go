package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mediamesh/livecast/api"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestManagerDefineNewLiveSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewSessionManager(t)

	uut, err := api.NewSessionManagerHandler(mockManager, common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	})
	assert.Nil(err)

	// Case 0: no parameters given
	{
		req, err := http.NewRequest("POST", "/v1/session", nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session", uut.LoggingMiddleware(uut.DefineNewLiveSessionHandler()),
		)

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: non-json payload
	{
		payload := uuid.NewString()
		req, err := http.NewRequest("POST", "/v1/session", bytes.NewBufferString(payload))
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session", uut.LoggingMiddleware(uut.DefineNewLiveSessionHandler()),
		)

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 2: missing stream key
	{
		payload := api.NewLiveSessionRequest{}
		payloadByte, err := json.Marshal(&payload)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/session", bytes.NewBuffer(payloadByte))
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session", uut.LoggingMiddleware(uut.DefineNewLiveSessionHandler()),
		)

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 3: correct parameters
	{
		payload := api.NewLiveSessionRequest{Key: uuid.NewString()}
		payloadByte, err := json.Marshal(&payload)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/session", bytes.NewBuffer(payloadByte))
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session", uut.LoggingMiddleware(uut.DefineNewLiveSessionHandler()),
		)

		// Setup mock
		testID := uuid.NewString()
		mockManager.On(
			"DefineLiveSession",
			mock.Anything,
			payload.Key,
			mock.Anything,
		).Return(testID, nil).Once()
		mockManager.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: payload.Key, LiveState: common.LiveStateIdle,
		}, nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.LiveSessionInfoResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &resp))
		assert.True(resp.Success)
		assert.Equal(testID, resp.Session.ID)
		assert.Equal(payload.Key, resp.Session.Key)
		assert.Equal(common.LiveStateIdle, resp.Session.LiveState)
	}
}

func TestManagerGetLiveSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewSessionManager(t)

	uut, err := api.NewSessionManagerHandler(mockManager, common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	})
	assert.Nil(err)

	// Case 0: unknown session
	{
		testID := uuid.NewString()
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/session/%s", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}", uut.LoggingMiddleware(uut.GetLiveSessionHandler()),
		)

		// Setup mock
		mockManager.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{}, gorm.ErrRecordNotFound).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNotFound, respRecorder.Code)
	}

	// Case 1: known session
	{
		testID := uuid.NewString()
		testKey := fmt.Sprintf("key-%s", uuid.NewString())
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/session/%s", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}", uut.LoggingMiddleware(uut.GetLiveSessionHandler()),
		)

		// Setup mock
		mockManager.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: testKey, LiveState: common.LiveStateLive,
		}, nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.LiveSessionInfoResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &resp))
		assert.Equal(testKey, resp.Session.Key)
		assert.Equal(common.LiveStateLive, resp.Session.LiveState)
	}
}

func TestManagerProvisionLiveStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewSessionManager(t)

	uut, err := api.NewSessionManagerHandler(mockManager, common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	})
	assert.Nil(err)

	testID := uuid.NewString()
	testResources := common.StreamResources{
		MediaLive: common.MediaLiveResources{
			Input:   common.MediaLiveInput{ID: "input1", Endpoints: []string{"rtmp://a", "rtmp://b"}},
			Channel: common.MediaLiveChannel{ID: "medialive_channel1"},
		},
		MediaPackage: common.MediaPackageResources{
			Channel: common.MediaPackageChannel{ID: "channel1"},
			Endpoints: common.DistributionEndpoints{
				CMAF: common.DistributionEndpoint{ID: "enpoint1", URL: "https://dist/cmaf.m3u8"},
				DASH: common.DistributionEndpoint{ID: "enpoint2", URL: "https://dist/dash.mpd"},
			},
		},
	}

	// Case 0: provisioning succeeds, the descriptor is returned
	{
		req, err := http.NewRequest("POST", fmt.Sprintf("/v1/session/%s/provision", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}/provision",
			uut.LoggingMiddleware(uut.ProvisionLiveStreamHandler()),
		)

		// Setup mock
		mockManager.On(
			"ProvisionLiveStream",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: "video-key", LiveState: common.LiveStateIdle, Resources: &testResources,
		}, nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.LiveSessionInfoResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &resp))
		assert.NotNil(resp.Session.Resources)
		assert.Equal(testResources, *resp.Session.Resources)
	}

	// Case 1: provisioning failure
	{
		req, err := http.NewRequest("POST", fmt.Sprintf("/v1/session/%s/provision", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}/provision",
			uut.LoggingMiddleware(uut.ProvisionLiveStreamHandler()),
		)

		// Setup mock
		mockManager.On(
			"ProvisionLiveStream",
			mock.Anything,
			testID,
		).Return(common.LiveSession{}, fmt.Errorf("dummy error")).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusInternalServerError, respRecorder.Code)
	}
}

func TestManagerStartLiveStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewSessionManager(t)

	uut, err := api.NewSessionManagerHandler(mockManager, common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	})
	assert.Nil(err)

	testID := uuid.NewString()

	// Case 0: start succeeds
	{
		req, err := http.NewRequest("POST", fmt.Sprintf("/v1/session/%s/start", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}/start",
			uut.LoggingMiddleware(uut.StartLiveStreamHandler()),
		)

		// Setup mock
		mockManager.On(
			"StartLiveStream",
			mock.Anything,
			testID,
		).Return(nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
	}

	// Case 1: unknown session
	{
		req, err := http.NewRequest("POST", fmt.Sprintf("/v1/session/%s/start", testID), nil)
		assert.Nil(err)

		// Setup HTTP handling
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/session/{sessionID}/start",
			uut.LoggingMiddleware(uut.StartLiveStreamHandler()),
		)

		// Setup mock
		mockManager.On(
			"StartLiveStream",
			mock.Anything,
			testID,
		).Return(gorm.ErrRecordNotFound).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNotFound, respRecorder.Code)
	}
}
