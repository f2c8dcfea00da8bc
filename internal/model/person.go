package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Person validation errors.
var (
	ErrInvalidPriority        = errors.New("invalid priority")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
	ErrInvalidCadence         = errors.New("preferred cadence must be a positive number of days")
)

// Priority ranks how important it is to stay in touch with a person.
type Priority string

const (
	// PriorityLow marks a person the user checks in with opportunistically.
	PriorityLow Priority = "low"
	// PriorityNormal is the default priority.
	PriorityNormal Priority = "normal"
	// PriorityHigh marks a person whose neglect is surfaced first.
	PriorityHigh Priority = "high"
)

// ParsePriority converts user input into a Priority. An empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityNormal, nil
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// InteractionType is the channel through which contact happened.
type InteractionType string

const (
	InteractionCall     InteractionType = "call"
	InteractionText     InteractionType = "text"
	InteractionInPerson InteractionType = "in_person"
	InteractionEmail    InteractionType = "email"
	InteractionOther    InteractionType = "other"
)

// InteractionTypes lists every valid interaction type in display order.
var InteractionTypes = []InteractionType{
	InteractionCall,
	InteractionText,
	InteractionInPerson,
	InteractionEmail,
	InteractionOther,
}

// ParseInteractionType converts user input into an InteractionType.
// "in-person" and "in person" are accepted as aliases of in_person.
func ParseInteractionType(s string) (InteractionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	t := InteractionType(normalized)
	if !slices.Contains(InteractionTypes, t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidInteractionType, s)
	}
	return t, nil
}

// Person is someone the user wants to keep in touch with.
type Person struct {
	CreatedAt            time.Time
	UpdatedAt            time.Time
	LastInteractionAt    *time.Time
	ID                   string
	FullName             string
	Priority             Priority
	LastInteractionType  InteractionType
	Phone                string
	Email                string
	Birthday             string
	Notes                string
	Tags                 []string
	PreferredCadenceDays int
}

// HasTag reports whether the person carries tag, ignoring case.
func (p *Person) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// NeverContacted reports whether no interaction has been logged yet.
func (p *Person) NeverContacted() bool {
	return p.LastInteractionAt == nil
}

// Validate ensures the person has valid data.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	if p.PreferredCadenceDays <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidCadence, p.PreferredCadenceDays)
	}
	if _, err := ParsePriority(string(p.Priority)); err != nil {
		return err
	}
	if p.LastInteractionType != "" {
		if _, err := ParseInteractionType(string(p.LastInteractionType)); err != nil {
			return err
		}
	}
	if p.LastInteractionAt != nil && p.LastInteractionType == "" {
		return fmt.Errorf("last interaction type is required when a last interaction is set")
	}
	return nil
}

// NormalizeTags lowercases, trims and de-duplicates tags, dropping empty ones.
// Order of first appearance is preserved.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// ParseTags splits a comma-separated tag list.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// Interaction is a single logged contact with a person.
type Interaction struct {
	OccurredAt time.Time
	CreatedAt  time.Time
	ID         string
	PersonID   string
	Type       InteractionType
	Summary    string
}

// Validate ensures the interaction has valid data.
func (i *Interaction) Validate() error {
	if i.PersonID == "" {
		return fmt.Errorf("person ID is required")
	}
	if i.OccurredAt.IsZero() {
		return fmt.Errorf("occurred at is required")
	}
	if _, err := ParseInteractionType(string(i.Type)); err != nil {
		return err
	}
	return nil
}
