package slugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "plomeria-perez", Make("  Plomería Pérez "))
	assert.Equal(t, "electro-sur-srl", Make("Electro Sur S.R.L"))
	assert.Equal(t, "fumigaciones-sa", Make("Fumigaciones S.A."))
}

func TestMakeUniqueAppendsSuffix(t *testing.T) {
	taken := map[string]bool{"ferreteria-lopez": true, "ferreteria-lopez-2": true}

	got, err := MakeUnique("Ferretería López", func(c string) (bool, error) {
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ferreteria-lopez-3", got)
}

func TestMakeUniqueEmptyBaseFallsBack(t *testing.T) {
	got, err := MakeUnique("", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "proveedor", got)
}
