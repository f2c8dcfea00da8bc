// Package outreach drafts check-in messages for people whose contact has drifted.
//
// Drafts come from fixed templates. The friendly draft picks its tone from the
// person's tags using an ordered rule table, so adding a new relationship kind
// means adding a row rather than another branch.
package outreach

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tend/internal/drift"
	"github.com/Veraticus/tend/internal/model"
)

// Time-context prefixes.
const (
	contextNone     = ""
	contextWhile    = "It's been a while. "
	contextTooLong  = "It's been way too long! "
	whileAfterDays  = 30
	tooLongAfterDay = 90
)

// fallbackName is used when the full name has no usable token.
const fallbackName = "there"

// Style identifies one of the three drafts.
type Style string

const (
	StyleCasual   Style = "casual"
	StyleFriendly Style = "friendly"
	StyleDirect   Style = "direct"
)

// Styles lists the draft styles in display order.
var Styles = []Style{StyleCasual, StyleFriendly, StyleDirect}

// Profile is what the suggester needs to know about a person.
type Profile struct {
	FullName            string
	LastInteractionType model.InteractionType
	Tags                []string
	DaysSince           int
	NeverContacted      bool
}

// Suggestions holds one draft per style.
type Suggestions struct {
	Casual   string
	Friendly string
	Direct   string
}

// Get returns the draft for style.
func (s Suggestions) Get(style Style) string {
	switch style {
	case StyleFriendly:
		return s.Friendly
	case StyleDirect:
		return s.Direct
	default:
		return s.Casual
	}
}

// toneRule selects a friendly template when its tag is present.
type toneRule struct {
	tag      string
	template string
}

// Templates take the first name and the time context, in that order.
var friendlyTones = []toneRule{
	{
		tag:      "family",
		template: "Hi %s, %sI've been thinking about you. Hope everything is going well! Let's plan a time to connect.",
	},
	{
		tag:      "friend",
		template: "Hey %s! %sI'd love to hear what you've been up to lately. Coffee/call soon?",
	},
	{
		tag:      "colleague",
		template: "Hi %s, %sHope you're doing well! Would be great to catch up and see how things are going.",
	},
}

const (
	casualTemplate           = "Hey %s! %sHow have you been? Would love to catch up soon."
	friendlyFallbackTemplate = "Hi %s, %sHope you're doing great! Would love to catch up sometime soon."
	directTemplate           = "Hi %s, just checking in! Available for a quick %s?"
)

// Suggest drafts the three outreach messages for a profile.
func Suggest(p Profile) Suggestions {
	name := firstName(p.FullName)
	ctx := timeContext(p.DaysSince, p.NeverContacted)

	return Suggestions{
		Casual:   fmt.Sprintf(casualTemplate, name, ctx),
		Friendly: fmt.Sprintf(friendlyTemplate(p.Tags), name, ctx),
		Direct:   fmt.Sprintf(directTemplate, name, directMedium(p.LastInteractionType)),
	}
}

// ForPerson builds a profile from a person and its drift result.
func ForPerson(person model.Person, result drift.Result) Profile {
	return Profile{
		FullName:            person.FullName,
		Tags:                person.Tags,
		LastInteractionType: person.LastInteractionType,
		DaysSince:           result.DaysSince,
		NeverContacted:      result.NeverContacted,
	}
}

// SuggestFor is shorthand for Suggest(ForPerson(view.Person, view.Result)).
func SuggestFor(view drift.PersonDrift) Suggestions {
	return Suggest(ForPerson(view.Person, view.Result))
}

func firstName(fullName string) string {
	if fields := strings.Fields(fullName); len(fields) > 0 {
		return fields[0]
	}
	return fallbackName
}

func timeContext(daysSince int, neverContacted bool) string {
	switch {
	case neverContacted || daysSince > tooLongAfterDay:
		return contextTooLong
	case daysSince > whileAfterDays:
		return contextWhile
	default:
		return contextNone
	}
}

func friendlyTemplate(tags []string) string {
	for _, rule := range friendlyTones {
		if hasTag(tags, rule.tag) {
			return rule.template
		}
	}
	return friendlyFallbackTemplate
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

func directMedium(last model.InteractionType) string {
	if last == model.InteractionCall {
		return "call"
	}
	return "chat"
}
