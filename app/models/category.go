package models

import (
	"errors"
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !slugPattern.MatchString(c.Slug) {
		return errors.New("slug may only contain lowercase letters, digits, dashes and underscores")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Category) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}
