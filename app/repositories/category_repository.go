package repositories

import (
	"fmt"
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

func slugIdxKey(slug string) string {
	return SlugIdxPrefix + strings.ToLower(slug)
}

// Create creates a new category, claiming its slug index key
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		category.ID = id

		if err := setUniqueIndex(txn, slugIdxKey(category.Slug), category.ID); err != nil {
			return err
		}

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(CategoryKeyPrefix, category.ID), data)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		return getCategory(txn, id, &category)
	})

	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category through the slug index
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, slugIdxKey(slug))
		if err != nil {
			return err
		}
		return getCategory(txn, id, &category)
	})

	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var category models.Category
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal category: %v", err)
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Update updates an existing category, moving the slug index when it changes
func (r *BadgerCategoryRepository) Update(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Category
		if err := getCategory(txn, category.ID, &existing); err != nil {
			return err
		}

		if !strings.EqualFold(existing.Slug, category.Slug) {
			if err := setUniqueIndex(txn, slugIdxKey(category.Slug), category.ID); err != nil {
				return err
			}
			if err := txn.Delete([]byte(slugIdxKey(existing.Slug))); err != nil {
				return err
			}
		}

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(CategoryKeyPrefix, category.ID), data)
	})
}

// Delete deletes a category and its slug index key
func (r *BadgerCategoryRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var category models.Category
		if err := getCategory(txn, id, &category); err != nil {
			return err
		}

		if err := txn.Delete([]byte(slugIdxKey(category.Slug))); err != nil {
			return err
		}
		return txn.Delete(entityKey(CategoryKeyPrefix, id))
	})
}

func getCategory(txn *badger.Txn, id int, category *models.Category) error {
	item, err := txn.Get(entityKey(CategoryKeyPrefix, id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, category)
	})
}
