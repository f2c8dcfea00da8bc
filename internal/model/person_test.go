package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		wantErr  bool
	}{
		{input: "", expected: PriorityNormal},
		{input: "low", expected: PriorityLow},
		{input: " High ", expected: PriorityHigh},
		{input: "NORMAL", expected: PriorityNormal},
		{input: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPriority))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseInteractionType(t *testing.T) {
	tests := []struct {
		input    string
		expected InteractionType
		wantErr  bool
	}{
		{input: "call", expected: InteractionCall},
		{input: "Text", expected: InteractionText},
		{input: "in-person", expected: InteractionInPerson},
		{input: "in person", expected: InteractionInPerson},
		{input: "in_person", expected: InteractionInPerson},
		{input: "email", expected: InteractionEmail},
		{input: "other", expected: InteractionOther},
		{input: "", wantErr: true},
		{input: "carrier pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInteractionType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInteractionType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPerson_HasTag(t *testing.T) {
	p := &Person{Tags: []string{"friend", "Climbing"}}
	assert.True(t, p.HasTag("friend"))
	assert.True(t, p.HasTag("climbing"))
	assert.False(t, p.HasTag("family"))
}

func TestPerson_Validate(t *testing.T) {
	last := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		errMsg  string
		person  Person
		wantErr bool
	}{
		{
			name:   "valid minimal",
			person: Person{FullName: "Grace Hopper", PreferredCadenceDays: 14},
		},
		{
			name: "valid with interaction",
			person: Person{
				FullName:             "Grace Hopper",
				PreferredCadenceDays: 30,
				Priority:             PriorityHigh,
				LastInteractionAt:    &last,
				LastInteractionType:  InteractionCall,
			},
		},
		{
			name:    "missing name",
			person:  Person{PreferredCadenceDays: 14},
			wantErr: true,
			errMsg:  "full name is required",
		},
		{
			name:    "zero cadence",
			person:  Person{FullName: "Grace", PreferredCadenceDays: 0},
			wantErr: true,
			errMsg:  "preferred cadence must be a positive number of days, got 0",
		},
		{
			name:    "negative cadence",
			person:  Person{FullName: "Grace", PreferredCadenceDays: -3},
			wantErr: true,
		},
		{
			name:    "bad priority",
			person:  Person{FullName: "Grace", PreferredCadenceDays: 7, Priority: "vip"},
			wantErr: true,
		},
		{
			name: "interaction without type",
			person: Person{
				FullName:             "Grace",
				PreferredCadenceDays: 7,
				LastInteractionAt:    &last,
			},
			wantErr: true,
			errMsg:  "last interaction type is required when a last interaction is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.person.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, err.Error())
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"friend", "family"}, NormalizeTags([]string{" Friend", "family", "", "FRIEND"}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
	assert.Equal(t, []string{"colleague", "climbing"}, ParseTags("colleague, climbing,,"))
}

func TestHabitLog_Validate(t *testing.T) {
	at := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, (&HabitLog{HabitID: "h1", CompletedAt: at}).Validate())
	assert.NoError(t, (&HabitLog{HabitID: "h1", CompletedAt: at, Skipped: true, SkipReason: "sick"}).Validate())
	assert.Error(t, (&HabitLog{CompletedAt: at}).Validate())
	assert.Error(t, (&HabitLog{HabitID: "h1"}).Validate())
	assert.Error(t, (&HabitLog{HabitID: "h1", CompletedAt: at, SkipReason: "sick"}).Validate())
}

func TestHabit_Validate(t *testing.T) {
	assert.NoError(t, (&Habit{Title: "Read", Color: "#10B981"}).Validate())
	assert.Error(t, (&Habit{Title: " "}).Validate())
	assert.Error(t, (&Habit{Title: "Read", Color: "green"}).Validate())
}
