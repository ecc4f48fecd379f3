package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix     = "user:"
	CategoryKeyPrefix = "category:"
	PostKeyPrefix     = "post:"
	CommentKeyPrefix  = "comment:"
	SessionKeyPrefix  = "session:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey     = "seq:user"
	CategorySeqKey = "seq:category"
	PostSeqKey     = "seq:post"
	CommentSeqKey  = "seq:comment"

	// Secondary index prefixes enforcing uniqueness
	UsernameIdxPrefix = "idx:user:username:"
	EmailIdxPrefix    = "idx:user:email:"
	SlugIdxPrefix     = "idx:category:slug:"
)

// entityKey builds a primary key. IDs are zero padded so that key order
// matches insertion order during prefix iteration.
func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", prefix, id))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// setUniqueIndex claims an index key pointing at an entity ID. It returns
// ErrDuplicate when the key is already held by a different entity.
func setUniqueIndex(txn *badger.Txn, key string, id int) error {
	item, err := txn.Get([]byte(key))
	if err == nil {
		var existing int
		if err := item.Value(func(val []byte) error {
			_, serr := fmt.Sscanf(string(val), "%d", &existing)
			return serr
		}); err != nil {
			return err
		}
		if existing != id {
			return ErrDuplicate
		}
		return nil
	}
	if err != badger.ErrKeyNotFound {
		return err
	}
	return txn.Set([]byte(key), []byte(fmt.Sprintf("%d", id)))
}

// lookupIndex resolves an index key to an entity ID.
func lookupIndex(txn *badger.Txn, key string) (int, error) {
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		_, serr := fmt.Sscanf(string(val), "%d", &id)
		return serr
	})
	return id, err
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
