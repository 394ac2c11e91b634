package persistence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/cryocore/thermd/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketLoopTargets = "loopTargets"
	BucketLoopEnabled = "loopEnabled"
)

// Persistence stores runtime loop settings changed after startup, so a
// daemon restart comes back up with the operator's last targets instead of
// the configured defaults. It is a collaborator of the control engine, the
// engine itself never touches it.
type Persistence interface {
	Init() error

	SaveLoopTarget(loopId string, targetKelvin float64) error
	LoadLoopTargets() (map[string]float64, error)
	DeleteLoopTarget(loopId string) error

	SaveLoopEnabled(loopId string, enabled bool) error
	LoadLoopEnabled() (map[string]bool, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p persistence) SaveLoopTarget(loopId string, targetKelvin float64) (err error) {
	return p.saveValue(BucketLoopTargets, loopId, targetKelvin)
}

func (p persistence) LoadLoopTargets() (map[string]float64, error) {
	result := map[string]float64{}
	err := p.loadBucket(BucketLoopTargets, func(key string, data []byte) {
		var value float64
		if err := json.Unmarshal(data, &value); err != nil {
			ui.Warning("Unable to unmarshal saved target for %s: %v", key, err)
			return
		}
		result[key] = value
	})
	return result, err
}

func (p persistence) DeleteLoopTarget(loopId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLoopTargets))
		if b == nil {
			return nil
		}
		if b.Get([]byte(loopId)) == nil {
			return nil
		}
		return b.Delete([]byte(loopId))
	})
}

func (p persistence) SaveLoopEnabled(loopId string, enabled bool) (err error) {
	return p.saveValue(BucketLoopEnabled, loopId, enabled)
}

func (p persistence) LoadLoopEnabled() (map[string]bool, error) {
	result := map[string]bool{}
	err := p.loadBucket(BucketLoopEnabled, func(key string, data []byte) {
		var value bool
		if err := json.Unmarshal(data, &value); err != nil {
			ui.Warning("Unable to unmarshal saved enabled flag for %s: %v", key, err)
			return
		}
		result[key] = value
	})
	return result, err
}

func (p persistence) saveValue(bucket string, key string, value interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (p persistence) loadBucket(bucket string, visit func(key string, data []byte)) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			// nothing persisted yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			visit(string(k), v)
			return nil
		})
	})
}
