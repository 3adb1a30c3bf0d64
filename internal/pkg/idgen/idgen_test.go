package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("enc")
	assert.Equal(t, "enc_1", gen.Generate())
	assert.Equal(t, "enc_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUID(t *testing.T) {
	gen := idgen.NewUUID("enc")
	a, b := gen.Generate(), gen.Generate()
	assert.True(t, strings.HasPrefix(a, "enc_"))
	assert.NotEqual(t, a, b)
}
