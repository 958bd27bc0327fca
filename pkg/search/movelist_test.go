package search_test

import (
	"testing"

	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/hexmind/hexcore/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestMoveListOrdersByPriority(t *testing.T) {
	moves := []hexboard.Move{{Row: 0, Col: 0}, {Row: 2, Col: 2}, {Row: 4, Col: 4}}
	priority := map[hexboard.Move]search.Priority{
		{Row: 0, Col: 0}: 1,
		{Row: 2, Col: 2}: 10,
		{Row: 4, Col: 4}: 5,
	}
	ml := search.NewMoveList(moves, func(m hexboard.Move) search.Priority { return priority[m] })
	assert.Equal(t, 3, ml.Size())

	first, ok := ml.Next()
	assert.True(t, ok)
	assert.Equal(t, hexboard.Move{Row: 2, Col: 2}, first)

	second, ok := ml.Next()
	assert.True(t, ok)
	assert.Equal(t, hexboard.Move{Row: 4, Col: 4}, second)

	third, ok := ml.Next()
	assert.True(t, ok)
	assert.Equal(t, hexboard.Move{Row: 0, Col: 0}, third)

	_, ok = ml.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, ml.Size())
}

func TestCenterBiasFavorsCenter(t *testing.T) {
	fn := search.CenterBias(5)
	center := fn(hexboard.Move{Row: 2, Col: 2})
	corner := fn(hexboard.Move{Row: 0, Col: 0})
	assert.Greater(t, center, corner)
}

func TestFirstBoostsDesignatedMove(t *testing.T) {
	base := search.CenterBias(5)
	f := search.First{Move: hexboard.Move{Row: 0, Col: 0}, Base: base}
	assert.Greater(t, f.Priority(hexboard.Move{Row: 0, Col: 0}), base(hexboard.Move{Row: 2, Col: 2}))
	assert.Equal(t, base(hexboard.Move{Row: 4, Col: 4}), f.Priority(hexboard.Move{Row: 4, Col: 4}))
}
