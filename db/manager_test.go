package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/db"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDBManagerLiveSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	testDB := fmt.Sprintf("ut-%s", uuid.NewString())
	uut, err := db.NewManager(db.GetInMemSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	log.Debugf("Using in-memory sqlite DB %s", testDB)

	utCtxt := context.Background()

	assert.Nil(uut.Ready(utCtxt))

	// Case 0: no sessions
	{
		_, err := uut.GetLiveSession(utCtxt, uuid.NewString())
		assert.NotNil(err)
		result, err := uut.ListLiveSessions(utCtxt)
		assert.Nil(err)
		assert.Len(result, 0)
	}

	// Case 1: create live session
	key1 := fmt.Sprintf("key-1-%s", uuid.NewString())
	sessionID1, err := uut.DefineLiveSession(utCtxt, key1, nil)
	assert.Nil(err)
	log.Debugf("Session ID1 %s", sessionID1)
	{
		entry, err := uut.GetLiveSession(utCtxt, sessionID1)
		assert.Nil(err)
		assert.Equal(key1, entry.Key)
		assert.Nil(entry.Title)
		assert.Equal(common.LiveStateIdle, entry.LiveState)
		assert.Nil(entry.Resources)
	}

	// Case 2: create another with same key
	{
		_, err := uut.DefineLiveSession(utCtxt, key1, nil)
		assert.NotNil(err)
	}

	// Case 3: fetch by key
	{
		entry, err := uut.GetLiveSessionByKey(utCtxt, key1)
		assert.Nil(err)
		assert.Equal(sessionID1, entry.ID)
	}
	{
		_, err := uut.GetLiveSessionByKey(utCtxt, uuid.NewString())
		assert.NotNil(err)
	}

	// Case 4: create session with title
	key2 := fmt.Sprintf("key-2-%s", uuid.NewString())
	title2 := "Morning Lecture"
	sessionID2, err := uut.DefineLiveSession(utCtxt, key2, &title2)
	assert.Nil(err)
	{
		entry, err := uut.GetLiveSession(utCtxt, sessionID2)
		assert.Nil(err)
		assert.NotNil(entry.Title)
		assert.Equal(title2, *entry.Title)
	}
	{
		entries, err := uut.ListLiveSessions(utCtxt)
		assert.Nil(err)
		assert.Len(entries, 2)
	}

	// Case 5: change live state
	assert.Nil(uut.ChangeLiveSessionState(utCtxt, sessionID1, common.LiveStateLive))
	{
		entry, err := uut.GetLiveSession(utCtxt, sessionID1)
		assert.Nil(err)
		assert.Equal(common.LiveStateLive, entry.LiveState)
	}
	{
		err := uut.ChangeLiveSessionState(utCtxt, uuid.NewString(), common.LiveStateLive)
		assert.NotNil(err)
	}

	// Case 6: record stream resources
	testResources := common.StreamResources{
		MediaLive: common.MediaLiveResources{
			Input: common.MediaLiveInput{
				ID:        "input1",
				Endpoints: []string{"rtmp://a/primary", "rtmp://b/secondary"},
			},
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
	assert.Nil(uut.RecordStreamResources(utCtxt, sessionID1, testResources))
	{
		entry, err := uut.GetLiveSession(utCtxt, sessionID1)
		assert.Nil(err)
		assert.NotNil(entry.Resources)
		assert.Equal(testResources, *entry.Resources)
	}
	{
		err := uut.RecordStreamResources(utCtxt, uuid.NewString(), testResources)
		assert.NotNil(err)
	}

	// Case 7: delete session
	assert.Nil(uut.DeleteLiveSession(utCtxt, sessionID1))
	{
		_, err := uut.GetLiveSession(utCtxt, sessionID1)
		assert.NotNil(err)
	}
	{
		entries, err := uut.ListLiveSessions(utCtxt)
		assert.Nil(err)
		assert.Len(entries, 1)
	}
}
