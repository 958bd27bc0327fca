package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/hexmind/hexcore/pkg/engine"
	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/hexmind/hexcore/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMovePlaysForcedWin(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "hexmind-test", 4, search.AlphaBeta{}, engine.WithOptions(engine.Options{
		Depth:         0,
		TTCapacity:    1024,
		Coefficients:  eval.DefaultCoefficients,
		BridgeEnabled: true,
	}))

	// A is one cell away from completing column 1 top to bottom; B's
	// replies go to cells that cannot interfere with that connection.
	moves := []hexboard.Move{
		{Row: 0, Col: 1}, {Row: 0, Col: 3}, // A, B
		{Row: 1, Col: 1}, {Row: 1, Col: 3}, // A, B
		{Row: 2, Col: 1}, {Row: 2, Col: 3}, // A, B
	}
	for _, m := range moves {
		require.NoError(t, e.ApplyMove(ctx, m))
	}

	done := make(chan struct{})
	var move hexboard.Move
	var pv search.PV
	var err error
	go func() {
		move, pv, err = e.Move(ctx, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not return a move in time")
	}

	require.NoError(t, err)
	assert.Equal(t, hexboard.Move{Row: 3, Col: 1}, move)
	assert.Equal(t, eval.WIN, pv.Score)
}

func TestEngineTakeBackUndoesLastMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "hexmind-test", 5, search.AlphaBeta{})

	require.NoError(t, e.ApplyMove(ctx, hexboard.Move{Row: 2, Col: 2}))
	before := e.Board()

	require.NoError(t, e.TakeBack(ctx))
	after := e.Board()

	assert.NotEqual(t, before.Hash(), after.Hash())
	assert.Equal(t, hexboard.Empty, after.Occupant(hexboard.Square{Row: 2, Col: 2}))
}

func TestEngineMoveHaltsOnStop(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "hexmind-test", 8, search.AlphaBeta{}, engine.WithOptions(engine.Options{
		Depth:         0,
		TTCapacity:    1 << 16,
		Coefficients:  eval.DefaultCoefficients,
		BridgeEnabled: true,
	}))

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		time.AfterFunc(50*time.Millisecond, func() { close(stop) })
		_, _, _ = e.Move(ctx, stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not honor stop in time")
	}
}
