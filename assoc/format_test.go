package assoc_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/on-the-ground/assocarray/assoc"

	"github.com/stretchr/testify/assert"
)

func TestSlotArrayMap_StringEmpty(t *testing.T) {
	m := assoc.New[string, string]()
	assert.Equal(t, "{}", m.String())

	m.Set("a", "apple")
	m.Remove("a")
	assert.Equal(t, "{}", m.String())
}

func TestSlotArrayMap_StringSingle(t *testing.T) {
	m := assoc.New[string, string]()
	m.Set("a", "apple")
	assert.Equal(t, "{ a: apple }", m.String())
	assert.Equal(t, "{ a: apple }", fmt.Sprint(m))
}

func TestSlotArrayMap_StringFollowsSlotOrder(t *testing.T) {
	m := assoc.New[string, string]()
	m.Set("a", "apple")
	m.Set("A", "aardvark")
	m.Set("b", "banana")
	assert.Equal(t, "{ a: apple, A: aardvark, b: banana }", m.String())

	m.Remove("a")
	m.Set("c", "cherry")
	assert.Equal(t, "{ c: cherry, A: aardvark, b: banana }", m.String())
}

func TestSlotArrayMap_StringUsesDisplayForm(t *testing.T) {
	m := assoc.New[*big.Int, *big.Int]()
	m.Set(big.NewInt(3), big.NewInt(9))
	assert.Equal(t, "{ 3: 9 }", m.String())
}
