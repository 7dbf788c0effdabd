package boltrepo

import (
	"encoding/json"

	"github.com/catalystauth/go-oauth-server/clients"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var clientsBucket = []byte("clients")

var _ clients.Repo = (*Repo)(nil)

// Repo is a bbolt-backed client directory, for deployments where the
// registered clients must survive restarts.
type Repo struct {
	db *bolt.DB
}

// Open opens (creating if needed) the client database at path.
func Open(path string) (*Repo, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[boltrepo.Open] bolt.Open")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(clientsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[boltrepo.Open] create bucket")
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Get(clientID string) (*clients.Client, error) {
	var client *clients.Client
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(clientsBucket).Get([]byte(clientID))
		if raw == nil {
			return clients.ClientNotFoundErr
		}
		client = &clients.Client{}
		return json.Unmarshal(raw, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *Repo) Upsert(client *clients.Client) error {
	if client == nil || client.ID == "" {
		return errors.New("[boltrepo.Upsert] client id cannot be empty")
	}
	raw, err := json.Marshal(client)
	if err != nil {
		return errors.Wrap(err, "[boltrepo.Upsert] marshal")
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(clientsBucket).Put([]byte(client.ID), raw)
	})
}
