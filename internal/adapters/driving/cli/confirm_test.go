package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

func TestIsYes(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"s", true},
		{"S\n", true},
		{"si", true},
		{"Sí", true},
		{" yes ", true},
		{"y", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"sure", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, isYes(tt.answer))
		})
	}
}

func TestPromptConfirmer(t *testing.T) {
	out := new(bytes.Buffer)
	p := &promptConfirmer{in: bufio.NewReader(strings.NewReader("s\n")), out: out}

	ok, err := p.Confirm(context.Background(), driving.Prompt{Message: "¿Continuar?"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "¿Continuar? [s/N]: ", out.String())
}

func TestPromptConfirmer_Destructive(t *testing.T) {
	out := new(bytes.Buffer)
	p := &promptConfirmer{in: bufio.NewReader(strings.NewReader("n\n")), out: out}

	ok, err := p.Confirm(context.Background(), driving.Prompt{Message: "¿Eliminar?", Destructive: true})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(out.String(), "¡ATENCIÓN!\n"))
}

func TestPromptConfirmer_AnswerWithoutNewline(t *testing.T) {
	p := &promptConfirmer{in: bufio.NewReader(strings.NewReader("si")), out: new(bytes.Buffer)}

	ok, err := p.Confirm(context.Background(), driving.Prompt{Message: "?"})

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPromptConfirmer_EOFDeclines(t *testing.T) {
	p := &promptConfirmer{in: bufio.NewReader(strings.NewReader("")), out: new(bytes.Buffer)}

	ok, err := p.Confirm(context.Background(), driving.Prompt{Message: "?"})

	require.NoError(t, err)
	assert.False(t, ok)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestPromptConfirmer_ReadError(t *testing.T) {
	p := &promptConfirmer{in: bufio.NewReader(failingReader{}), out: new(bytes.Buffer)}

	_, err := p.Confirm(context.Background(), driving.Prompt{Message: "?"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read failed")
}

func TestConfirmerFor_YesFlag(t *testing.T) {
	yesFlag = true
	t.Cleanup(func() { yesFlag = false })

	c := confirmerFor(&cobra.Command{})

	ok, err := c.Confirm(context.Background(), driving.Prompt{Message: "?", Destructive: true})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmerFor_Reader(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("s\n"))
	cmd.SetOut(new(bytes.Buffer))

	c := confirmerFor(cmd)

	_, isPrompt := c.(*promptConfirmer)
	assert.True(t, isPrompt)
}
