package repositories

import (
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func usernameIdxKey(username string) string {
	return UsernameIdxPrefix + strings.ToLower(username)
}

func emailIdxKey(email string) string {
	return EmailIdxPrefix + strings.ToLower(email)
}

// Create creates a new user, claiming its username and email index keys in
// the same transaction so uniqueness holds under concurrent registration.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		if err := setUniqueIndex(txn, usernameIdxKey(user.Username), user.ID); err != nil {
			return err
		}
		if err := setUniqueIndex(txn, emailIdxKey(user.Email), user.ID); err != nil {
			return err
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(UserKeyPrefix, user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, usernameIdxKey(username))
		if err != nil {
			return err
		}
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, emailIdxKey(email))
		if err != nil {
			return err
		}
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user, moving the username and email index keys
// when those fields change.
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.User
		if err := getUser(txn, user.ID, &existing); err != nil {
			return err
		}

		if !strings.EqualFold(existing.Username, user.Username) {
			if err := setUniqueIndex(txn, usernameIdxKey(user.Username), user.ID); err != nil {
				return err
			}
			if err := txn.Delete([]byte(usernameIdxKey(existing.Username))); err != nil {
				return err
			}
		}
		if !strings.EqualFold(existing.Email, user.Email) {
			if err := setUniqueIndex(txn, emailIdxKey(user.Email), user.ID); err != nil {
				return err
			}
			if err := txn.Delete([]byte(emailIdxKey(existing.Email))); err != nil {
				return err
			}
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(UserKeyPrefix, user.ID), data)
	})
}

// Delete deletes a user and its index keys
func (r *BadgerUserRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var user models.User
		if err := getUser(txn, id, &user); err != nil {
			return err
		}

		if err := txn.Delete([]byte(usernameIdxKey(user.Username))); err != nil {
			return err
		}
		if err := txn.Delete([]byte(emailIdxKey(user.Email))); err != nil {
			return err
		}
		return txn.Delete(entityKey(UserKeyPrefix, id))
	})
}

func getUser(txn *badger.Txn, id int, user *models.User) error {
	item, err := txn.Get(entityKey(UserKeyPrefix, id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, user)
	})
}
