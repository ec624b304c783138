package db

import (
	"context"
	"encoding/json"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mediamesh/livecast/common"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersistenceManager database access layer
type PersistenceManager interface {
	/*
		Ready check whether the DB connection is working

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	// =====================================================================================
	// Live sessions

	/*
		DefineLiveSession create new live session at `idle`

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
		GetLiveSessionByKey retrieve a live session by stream key

			@param ctxt context.Context - execution context
			@param key string - stream key
			@returns session entry
	*/
	GetLiveSessionByKey(ctxt context.Context, key string) (common.LiveSession, error)

	/*
		ListLiveSessions list all live sessions

			@param ctxt context.Context - execution context
			@returns all session entries
	*/
	ListLiveSessions(ctxt context.Context) ([]common.LiveSession, error)

	/*
		ChangeLiveSessionState change the live state of a session.

		The new state overwrites the previous one; out-of-order updates are
		last-write-wins.

			@param ctxt context.Context - execution context
			@param id string - session entry ID
			@param newState common.LiveState - new live state
	*/
	ChangeLiveSessionState(ctxt context.Context, id string, newState common.LiveState) error

	/*
		RecordStreamResources record the provisioned stream resource descriptor
		of a session

			@param ctxt context.Context - execution context
			@param id string - session entry ID
			@param resources common.StreamResources - provisioned resource descriptor
	*/
	RecordStreamResources(
		ctxt context.Context, id string, resources common.StreamResources,
	) error

	/*
		DeleteLiveSession delete a live session

			@param ctxt context.Context - execution context
			@param id string - session entry ID
	*/
	DeleteLiveSession(ctxt context.Context, id string) error
}

// persistenceManagerImpl implements PersistenceManager
type persistenceManagerImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

/*
NewManager define a new DB access manager

	@param dbDialector gorm.Dialector - GORM DB dialector
	@param logLevel logger.LogLevel - GORM log level
	@returns new manager
*/
func NewManager(dbDialector gorm.Dialector, logLevel logger.LogLevel) (PersistenceManager, error) {
	db, err := gorm.Open(dbDialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	// Prepare the databases
	if err := db.AutoMigrate(&liveSession{}); err != nil {
		return nil, err
	}

	logTags := log.Fields{"module": "db", "component": "manager", "instance": dbDialector.Name()}
	return &persistenceManagerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        db,
		validator: validator.New(),
	}, nil
}

func (m *persistenceManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.Find(&[]liveSession{}).Limit(1)
		return tmp.Error
	})
}

// =====================================================================================
// Live sessions

func (m *persistenceManagerImpl) DefineLiveSession(
	ctxt context.Context, key string, title *string,
) (string, error) {
	newEntryID := ""
	return newEntryID, m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		// Prepare new entry
		newEntryID = uuid.NewString()
		newEntry := liveSession{
			LiveSession: common.LiveSession{
				ID:        newEntryID,
				Key:       key,
				Title:     title,
				LiveState: common.LiveStateIdle,
			},
		}

		// Verify data
		if err := m.validator.Struct(&newEntry); err != nil {
			return err
		}

		// Insert entry
		if tmp := tx.Create(&newEntry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("key", key).
			WithField("id", newEntryID).
			Info("Defined new live session")
		return nil
	})
}

func (m *persistenceManagerImpl) GetLiveSession(
	ctxt context.Context, id string,
) (common.LiveSession, error) {
	var result common.LiveSession
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry liveSession
		if tmp := tx.Where("id = ?", id).First(&entry); tmp.Error != nil {
			return tmp.Error
		}
		converted, err := entry.toSession()
		if err != nil {
			return err
		}
		result = converted
		return nil
	})
}

func (m *persistenceManagerImpl) GetLiveSessionByKey(
	ctxt context.Context, key string,
) (common.LiveSession, error) {
	var result common.LiveSession
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry liveSession
		if tmp := tx.Where("key = ?", key).First(&entry); tmp.Error != nil {
			return tmp.Error
		}
		converted, err := entry.toSession()
		if err != nil {
			return err
		}
		result = converted
		return nil
	})
}

func (m *persistenceManagerImpl) ListLiveSessions(
	ctxt context.Context,
) ([]common.LiveSession, error) {
	var results []common.LiveSession
	return results, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []liveSession
		if tmp := tx.Order("created_at").Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			converted, err := entry.toSession()
			if err != nil {
				return err
			}
			results = append(results, converted)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) ChangeLiveSessionState(
	ctxt context.Context, id string, newState common.LiveState,
) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		var entry liveSession
		if tmp := tx.Where("id = ?", id).First(&entry); tmp.Error != nil {
			return tmp.Error
		}
		if tmp := tx.
			Model(&liveSession{}).
			Where("id = ?", id).
			Update("live_state", newState); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("id", id).
			WithField("live-state", newState).
			Info("Changed live session state")
		return nil
	})
}

func (m *persistenceManagerImpl) RecordStreamResources(
	ctxt context.Context, id string, resources common.StreamResources,
) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		serialized, err := json.Marshal(&resources)
		if err != nil {
			return err
		}

		var entry liveSession
		if tmp := tx.Where("id = ?", id).First(&entry); tmp.Error != nil {
			return tmp.Error
		}
		if tmp := tx.
			Model(&liveSession{}).
			Where("id = ?", id).
			Update("resources", string(serialized)); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("id", id).
			Info("Recorded provisioned stream resources")
		return nil
	})
}

func (m *persistenceManagerImpl) DeleteLiveSession(ctxt context.Context, id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)
		if tmp := tx.Delete(&liveSession{
			LiveSession: common.LiveSession{ID: id},
		}); tmp.Error != nil {
			return tmp.Error
		}
		log.WithFields(logTags).WithField("id", id).Info("Deleted live session")
		return nil
	})
}

// toSession rebuild the common.LiveSession view of an entry
func (s liveSession) toSession() (common.LiveSession, error) {
	result := s.LiveSession
	if s.ResourcesRaw != nil {
		var resources common.StreamResources
		if err := json.Unmarshal([]byte(*s.ResourcesRaw), &resources); err != nil {
			return result, err
		}
		result.Resources = &resources
	}
	return result, nil
}
