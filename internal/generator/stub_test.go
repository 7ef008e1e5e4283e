package generator

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscript/internal/domain"
)

func TestStubGolden(t *testing.T) {
	out, err := Stub{}.Generate(context.Background(), []string{"insomnia", "stress"}, domain.ToneCalm, 20)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "stub_calm", []byte(out))
}

func TestStubReflectsInputs(t *testing.T) {
	out, err := Stub{}.Generate(context.Background(), []string{"anxiety"}, domain.ToneEnergising, 30)
	require.NoError(t, err)

	assert.Contains(t, out, "energising Approach")
	assert.Contains(t, out, "Approx. 30 minutes")
	assert.Contains(t, out, "Generated for: anxiety")
	assert.Contains(t, out, "manage anxiety")
	assert.Contains(t, out, "~3900 words")
}

func TestNewProvider(t *testing.T) {
	gen, err := New("stub")
	require.NoError(t, err)
	assert.NotNil(t, gen)

	gen, err = New("")
	require.NoError(t, err)
	assert.NotNil(t, gen)

	_, err = New("llm")
	assert.Error(t, err)
}
