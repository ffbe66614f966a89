package domain

import (
	"encoding/json"
	"regexp"
)

// Category arrives from the backend either as a bare id/name string or as a
// populated {_id, name} object depending on the query. A bare 24-hex-char
// string is an unpopulated object id and carries no display name.
type Category struct {
	ID   string
	Name string
}

var objectIDPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if objectIDPattern.MatchString(s) {
			c.ID = s
			return nil
		}
		c.Name = s
		return nil
	}

	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.ID = obj.ID
	c.Name = obj.Name
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c.Name == "" {
		return json.Marshal(c.ID)
	}
	return json.Marshal(struct {
		ID   string `json:"_id,omitempty"`
		Name string `json:"name"`
	}{c.ID, c.Name})
}

type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Category    Category `json:"category,omitempty"`
	TotalStock  int      `json:"totalStock,omitempty"`
	IsActive    bool     `json:"isActive,omitempty"`
}

// Audience is the storefront-facing filter; it maps onto the backend's
// gender field (her -> women, him -> men, unisex -> unfiltered).
type Audience string

const (
	AudienceHer    Audience = "her"
	AudienceHim    Audience = "him"
	AudienceUnisex Audience = "unisex"
)

func (a Audience) Valid() bool {
	return a == AudienceHer || a == AudienceHim || a == AudienceUnisex
}

// BackendGender returns the gender query value for the audience, or ""
// when the listing should not be filtered.
func (a Audience) BackendGender() string {
	switch a {
	case AudienceHer:
		return "women"
	case AudienceHim:
		return "men"
	default:
		return ""
	}
}
