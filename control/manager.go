package control

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/mediamesh/livecast/common"
	"github.com/mediamesh/livecast/db"
	"github.com/mediamesh/livecast/provision"
)

// SessionManager live session operations manager
type SessionManager interface {
	/*
		Ready check whether the manager is ready

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	// =====================================================================================
	// Live sessions

	/*
		DefineLiveSession create new live session

			@param ctxt context.Context - execution context
			@param key string - opaque stream key
			@param title *string - optionally, session title
			@returns new session entry ID
	*/
	DefineLiveSession(ctxt context.Context, key string, title *string) (string, error)

	/*
		GetLiveSession retrieve a live session

			@param ctxt context.Context - execution context
			@param id string - session entry ID
			@returns session entry
	*/
	GetLiveSession(ctxt context.Context, id string) (common.LiveSession, error)

	/*
		ListLiveSessions list all live sessions

			@param ctxt context.Context - execution context
			@returns all session entries
	*/
	ListLiveSessions(ctxt context.Context) ([]common.LiveSession, error)

	/*
		DeleteLiveSession delete a live session.

		Provisioned cloud resources are not touched; cleaning those up remains
		an operator task.

			@param ctxt context.Context - execution context
			@param id string - session entry ID
	*/
	DeleteLiveSession(ctxt context.Context, id string) error

	// =====================================================================================
	// Stream life cycle

	/*
		ProvisionLiveStream provision the cloud resource stack for a session
		and record the resulting descriptor

			@param ctxt context.Context - execution context
			@param id string - session entry ID
			@returns the updated session entry
	*/
	ProvisionLiveStream(ctxt context.Context, id string) (common.LiveSession, error)

	/*
		StartLiveStream start a session's encoding channel and mark the session
		as `starting`. The external encoder confirms `live` through the state
		callback.

			@param ctxt context.Context - execution context
			@param id string - session entry ID
	*/
	StartLiveStream(ctxt context.Context, id string) error

	/*
		UpdateLiveState overwrite a session's live state as reported by an
		external encoder callback. The previous state is not consulted.

			@param ctxt context.Context - execution context
			@param key string - stream key of the session
			@param newState common.LiveState - reported live state
	*/
	UpdateLiveState(ctxt context.Context, key string, newState common.LiveState) error
}

// sessionManagerImpl implements SessionManager
type sessionManagerImpl struct {
	goutils.Component
	db          db.PersistenceManager
	provisioner provision.StreamProvisioner
}

/*
NewSessionManager define a new live session manager

	@param dbManager db.PersistenceManager - DB access manager
	@param provisioner provision.StreamProvisioner - stream provisioner
	@returns new SessionManager
*/
func NewSessionManager(
	dbManager db.PersistenceManager, provisioner provision.StreamProvisioner,
) (SessionManager, error) {
	return &sessionManagerImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "control", "component": "session-manager"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, db: dbManager, provisioner: provisioner,
	}, nil
}

func (m *sessionManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Ready(ctxt)
}

// =====================================================================================
// Live sessions

func (m *sessionManagerImpl) DefineLiveSession(
	ctxt context.Context, key string, title *string,
) (string, error) {
	return m.db.DefineLiveSession(ctxt, key, title)
}

func (m *sessionManagerImpl) GetLiveSession(
	ctxt context.Context, id string,
) (common.LiveSession, error) {
	return m.db.GetLiveSession(ctxt, id)
}

func (m *sessionManagerImpl) ListLiveSessions(ctxt context.Context) ([]common.LiveSession, error) {
	return m.db.ListLiveSessions(ctxt)
}

func (m *sessionManagerImpl) DeleteLiveSession(ctxt context.Context, id string) error {
	return m.db.DeleteLiveSession(ctxt, id)
}

// =====================================================================================
// Stream life cycle

func (m *sessionManagerImpl) ProvisionLiveStream(
	ctxt context.Context, id string,
) (common.LiveSession, error) {
	var result common.LiveSession
	logTags := m.GetLogTagsForContext(ctxt)

	session, err := m.db.GetLiveSession(ctxt, id)
	if err != nil {
		return result, err
	}

	resources, err := m.provisioner.CreateLiveStream(ctxt, session.Key)
	if err != nil {
		// Whatever was created before the failure is left in place
		log.
			WithError(err).
			WithFields(logTags).
			WithField("id", id).
			WithField("key", session.Key).
			Error("Stream provisioning failed; partial cloud resources may remain")
		return result, err
	}

	if err := m.db.RecordStreamResources(ctxt, id, resources); err != nil {
		return result, err
	}

	return m.db.GetLiveSession(ctxt, id)
}

func (m *sessionManagerImpl) StartLiveStream(ctxt context.Context, id string) error {
	session, err := m.db.GetLiveSession(ctxt, id)
	if err != nil {
		return err
	}
	if session.Resources == nil {
		return fmt.Errorf("live session '%s' has no provisioned stream stack", id)
	}

	if err := m.provisioner.StartChannel(ctxt, session.Resources.MediaLive.Channel.ID); err != nil {
		return err
	}

	return m.db.ChangeLiveSessionState(ctxt, id, common.LiveStateStarting)
}

func (m *sessionManagerImpl) UpdateLiveState(
	ctxt context.Context, key string, newState common.LiveState,
) error {
	session, err := m.db.GetLiveSessionByKey(ctxt, key)
	if err != nil {
		return err
	}
	return m.db.ChangeLiveSessionState(ctxt, session.ID, newState)
}
