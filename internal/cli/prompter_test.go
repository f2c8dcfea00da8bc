package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{name: "answer", input: "Maya\n", want: "Maya"},
		{name: "blank uses default", input: "\n", def: "14", want: "14"},
		{name: "answer overrides default", input: "7\n", def: "14", want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Ask(context.Background(), "Cadence", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Cadence")
			if tt.def != "" {
				assert.Contains(t, out.String(), "["+tt.def+"]")
			}
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)
			got, err := p.Confirm(context.Background(), "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_ChooseRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\nF\n"), &out)

	got, err := p.Choose(context.Background(), "Style", []string{"c", "f", "d"})
	require.NoError(t, err)
	assert.Equal(t, "f", got)
	assert.Contains(t, out.String(), "Please choose one of")
}

func TestPrompter_ChooseEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	_, err := p.Choose(context.Background(), "Style", []string{"c"})
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_Progress(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	// Advancing without a bar is a no-op.
	p.Advance()
	p.FinishProgress()

	p.StartProgress(3, "Importing")
	for i := 0; i < 3; i++ {
		p.Advance()
	}
	p.FinishProgress()

	assert.Contains(t, out.String(), "Importing")
	assert.Nil(t, p.progressBar)
}
