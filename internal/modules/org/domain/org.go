package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category groups ingested documents; the backend owns the records and
// the client mirrors them.
type Category struct {
	ID   string
	Name string
	Tags []string
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}

// Normalize trims the name and drops blank tags.
func (c Category) Normalize() Category {
	c.Name = strings.TrimSpace(c.Name)
	tags := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	c.Tags = tags
	return c
}

// User is an organization member account.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Active    bool
	CreatedAt time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	return nil
}
