// Package scanarchive keeps the recognized lines of every scanned receipt so
// a receipt can be parsed again later, with another strategy, without
// repeating text recognition.
package scanarchive

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ryanhu021/splitr/internal/receiptparse"
	"github.com/ryanhu021/splitr/internal/storage"
)

const bucketName = "scans"

// Record is the recognition output kept for one receipt.
type Record struct {
	ReceiptID  string              `json:"receipt_id"`
	Recognizer string              `json:"recognizer"`
	Strategy   string              `json:"strategy"`
	Lines      []receiptparse.Line `json:"lines"`
	ScannedAt  int64               `json:"scanned_at"`
}

// Archive stores records in a bbolt file, keyed by receipt ID.
type Archive struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Archive, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening scan archive: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Archive{db: db}, nil
}

// Put stores a record, replacing any previous one for the same receipt.
func (a *Archive) Put(record *Record) error {
	if record.ReceiptID == "" {
		return fmt.Errorf("scan record has no receipt ID")
	}
	if record.ScannedAt == 0 {
		record.ScannedAt = time.Now().Unix()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling scan record: %w", err)
	}
	return a.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(record.ReceiptID), data)
	})
}

// Get returns the record for a receipt, or an error wrapping
// storage.ErrNotFound.
func (a *Archive) Get(receiptID string) (*Record, error) {
	var record *Record
	err := a.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(receiptID))
		if data == nil {
			return fmt.Errorf("scan record %s: %w", receiptID, storage.ErrNotFound)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a receipt's record. Deleting a missing record is a no-op.
func (a *Archive) Delete(receiptID string) error {
	return a.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(receiptID))
	})
}

// Close closes the underlying file.
func (a *Archive) Close() error {
	return a.db.Close()
}
