package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
)

// EncoderProfileStore provides encoder profile documents by name.
//
// A profile is an opaque, pre-authored JSON document describing the
// transcoding ladder. The store never interprets its contents.
type EncoderProfileStore interface {
	/*
		Get fetch one encoder profile document

			@param ctxt context.Context - execution context
			@param name string - profile name
			@returns the profile document verbatim
	*/
	Get(ctxt context.Context, name string) (json.RawMessage, error)

	/*
		Start begin watching the profile directory for changes

			@param ctxt context.Context - execution context
			@param runtimeCtxt context.Context - runtime context for the watch loop
	*/
	Start(ctxt, runtimeCtxt context.Context) error

	/*
		Stop end the profile directory watch loop

			@param ctxt context.Context - execution context
	*/
	Stop(ctxt context.Context) error
}

// encoderProfileStoreImpl implements EncoderProfileStore
type encoderProfileStoreImpl struct {
	goutils.Component
	profileDir     string
	cache          map[string]json.RawMessage
	lock           sync.RWMutex
	watcher        *fsnotify.Watcher
	watcherRunning uint32
	wg             *sync.WaitGroup
	contextCancel  func()
}

/*
NewEncoderProfileStore define a new encoder profile store

	@param profileDir string - directory holding `{name}.json` profile documents
	@returns new store
*/
func NewEncoderProfileStore(profileDir string) (EncoderProfileStore, error) {
	logTags := log.Fields{
		"module":    "provision",
		"component": "encoder-profile-store",
		"instance":  profileDir,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to define 'fsnotify' watcher")
		return nil, err
	}

	return &encoderProfileStoreImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		profileDir:     profileDir,
		cache:          map[string]json.RawMessage{},
		watcher:        watcher,
		watcherRunning: 0,
	}, nil
}

func (s *encoderProfileStoreImpl) Get(ctxt context.Context, name string) (json.RawMessage, error) {
	logTags := s.GetLogTagsForContext(ctxt)

	s.lock.RLock()
	cached, ok := s.cache[name]
	s.lock.RUnlock()
	if ok {
		return cached, nil
	}

	profileFile := filepath.Join(s.profileDir, fmt.Sprintf("%s.json", name))
	content, err := os.ReadFile(profileFile)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile", name).
			Error("Unable to read encoder profile document")
		return nil, err
	}
	if !json.Valid(content) {
		err := fmt.Errorf("encoder profile '%s' is not valid JSON", name)
		log.WithError(err).WithFields(logTags).Error("Encoder profile load failed")
		return nil, err
	}

	s.lock.Lock()
	s.cache[name] = content
	s.lock.Unlock()
	return content, nil
}

func (s *encoderProfileStoreImpl) Start(ctxt, runtimeCtxt context.Context) error {
	logTags := s.GetLogTagsForContext(ctxt)

	if !atomic.CompareAndSwapUint32(&s.watcherRunning, 0, 1) {
		return fmt.Errorf("encoder profile watcher already running")
	}

	if err := s.watcher.Add(s.profileDir); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to watch encoder profile DIR")
		return err
	}

	watcherContext, contextCancel := context.WithCancel(runtimeCtxt)
	s.contextCancel = contextCancel
	s.wg = &sync.WaitGroup{}
	s.wg.Add(1)

	// Profile change processing. A changed document is dropped from the cache
	// and re-read on next use.
	go func() {
		defer s.wg.Done()

		log.WithFields(logTags).Info("Starting encoder profile watcher")
		defer log.WithFields(logTags).Info("Encoder profile watcher stopped")

		for {
			select {
			case <-watcherContext.Done():
				return
			case event, ok := <-s.watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) {
					continue
				}
				if filepath.Ext(event.Name) != ".json" {
					continue
				}
				name := filepath.Base(event.Name)
				name = name[:len(name)-len(".json")]
				s.lock.Lock()
				delete(s.cache, name)
				s.lock.Unlock()
				log.
					WithFields(logTags).
					WithField("profile", name).
					WithField("op", event.Op.String()).
					Info("Dropped cached encoder profile")
			case err, ok := <-s.watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).WithFields(logTags).Error("Encoder profile watcher returned error")
			}
		}
	}()

	return nil
}

func (s *encoderProfileStoreImpl) Stop(ctxt context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.watcherRunning, 1, 0) {
		return nil
	}
	s.contextCancel()
	if err := s.watcher.Close(); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}
