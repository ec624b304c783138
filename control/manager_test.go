package control_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/control"
	"github.com/mediamesh/livecast/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSessionManagerProvisionLiveStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	mockProvisioner := mocks.NewStreamProvisioner(t)

	uut, err := control.NewSessionManager(mockDB, mockProvisioner)
	assert.Nil(err)

	testID := uuid.NewString()
	testKey := fmt.Sprintf("key-%s", uuid.NewString())
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

	// Case 0: unknown session
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{}, fmt.Errorf("dummy error")).Once()

		_, err := uut.ProvisionLiveStream(utCtxt, testID)
		assert.NotNil(err)
	}

	// Case 1: provision and record the descriptor
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: testKey, LiveState: common.LiveStateIdle,
		}, nil).Once()
		mockProvisioner.On(
			"CreateLiveStream",
			mock.Anything,
			testKey,
		).Return(testResources, nil).Once()
		mockDB.On(
			"RecordStreamResources",
			mock.Anything,
			testID,
			testResources,
		).Return(nil).Once()
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: testKey, LiveState: common.LiveStateIdle, Resources: &testResources,
		}, nil).Once()

		entry, err := uut.ProvisionLiveStream(utCtxt, testID)
		assert.Nil(err)
		assert.NotNil(entry.Resources)
		assert.Equal(testResources, *entry.Resources)
	}

	// Case 2: provisioning failure leaves the session untouched
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, Key: testKey, LiveState: common.LiveStateIdle,
		}, nil).Once()
		mockProvisioner.On(
			"CreateLiveStream",
			mock.Anything,
			testKey,
		).Return(common.StreamResources{}, fmt.Errorf("dummy error")).Once()

		_, err := uut.ProvisionLiveStream(utCtxt, testID)
		assert.NotNil(err)
	}
}

func TestSessionManagerStartLiveStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	mockProvisioner := mocks.NewStreamProvisioner(t)

	uut, err := control.NewSessionManager(mockDB, mockProvisioner)
	assert.Nil(err)

	testID := uuid.NewString()
	testResources := common.StreamResources{
		MediaLive: common.MediaLiveResources{
			Channel: common.MediaLiveChannel{ID: "medialive_channel1"},
		},
	}

	// Case 0: session without a provisioned stack
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{ID: testID, LiveState: common.LiveStateIdle}, nil).Once()

		assert.NotNil(uut.StartLiveStream(utCtxt, testID))
	}

	// Case 1: start the channel and mark the session `starting`
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, LiveState: common.LiveStateIdle, Resources: &testResources,
		}, nil).Once()
		mockProvisioner.On(
			"StartChannel",
			mock.Anything,
			"medialive_channel1",
		).Return(nil).Once()
		mockDB.On(
			"ChangeLiveSessionState",
			mock.Anything,
			testID,
			common.LiveStateStarting,
		).Return(nil).Once()

		assert.Nil(uut.StartLiveStream(utCtxt, testID))
	}

	// Case 2: channel start failure leaves the state unchanged
	{
		mockDB.On(
			"GetLiveSession",
			mock.Anything,
			testID,
		).Return(common.LiveSession{
			ID: testID, LiveState: common.LiveStateIdle, Resources: &testResources,
		}, nil).Once()
		mockProvisioner.On(
			"StartChannel",
			mock.Anything,
			"medialive_channel1",
		).Return(fmt.Errorf("dummy error")).Once()

		assert.NotNil(uut.StartLiveStream(utCtxt, testID))
	}
}

func TestSessionManagerUpdateLiveState(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	mockProvisioner := mocks.NewStreamProvisioner(t)

	uut, err := control.NewSessionManager(mockDB, mockProvisioner)
	assert.Nil(err)

	testID := uuid.NewString()
	testKey := fmt.Sprintf("key-%s", uuid.NewString())

	// Case 0: unknown key
	{
		mockDB.On(
			"GetLiveSessionByKey",
			mock.Anything,
			testKey,
		).Return(common.LiveSession{}, fmt.Errorf("dummy error")).Once()

		assert.NotNil(uut.UpdateLiveState(utCtxt, testKey, common.LiveStateLive))
	}

	// Case 1: the reported state overwrites the current one unconditionally
	{
		mockDB.On(
			"GetLiveSessionByKey",
			mock.Anything,
			testKey,
		).Return(common.LiveSession{
			ID: testID, Key: testKey, LiveState: common.LiveStateIdle,
		}, nil).Once()
		mockDB.On(
			"ChangeLiveSessionState",
			mock.Anything,
			testID,
			common.LiveStateStopped,
		).Return(nil).Once()

		assert.Nil(uut.UpdateLiveState(utCtxt, testKey, common.LiveStateStopped))
	}
}
