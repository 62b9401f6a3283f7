package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
)

// newActiveGame returns a started game where the host fires first at the
// guest's open water layout.
func newActiveGame(t *testing.T) *entity.Game {
	t.Helper()

	game := entity.NewGame(hostID, guestID, fixedRandom(0))

	started, err := game.PlaceFleet(hostID, suite.CornerFleet())
	require.NoError(t, err)
	require.False(t, started)

	started, err = game.PlaceFleet(guestID, suite.OpenWaterFleet())
	require.NoError(t, err)
	require.True(t, started)

	return game
}

func TestGame_PlaceFleet(t *testing.T) {
	t.Run("Game waits for both fleets", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame(hostID, guestID, fixedRandom(1))

		// When: only the host submits
		started, err := game.PlaceFleet(hostID, suite.CornerFleet())

		// Then: the game keeps waiting and has no turn yet
		require.NoError(t, err)
		assert.False(t, started)
		assert.Equal(t, entity.StatusAwaitingFleets, game.Status())
		assert.True(t, game.Ready(hostID))
		assert.False(t, game.Ready(guestID))
		assert.Empty(t, game.Turn())
	})

	t.Run("Second fleet starts the game with a random first turn", func(t *testing.T) {
		game := entity.NewGame(hostID, guestID, fixedRandom(1))
		_, err := game.PlaceFleet(hostID, suite.CornerFleet())
		require.NoError(t, err)

		// When: the guest submits too
		started, err := game.PlaceFleet(guestID, suite.OpenWaterFleet())

		// Then: the game is active and the random source picked the guest
		require.NoError(t, err)
		assert.True(t, started)
		assert.Equal(t, entity.StatusActive, game.Status())
		assert.Equal(t, guestID, game.Turn())
	})

	t.Run("Fleet can be replaced before the game starts", func(t *testing.T) {
		game := entity.NewGame(hostID, guestID, fixedRandom(0))
		_, err := game.PlaceFleet(hostID, suite.CornerFleet())
		require.NoError(t, err)

		// When: the host submits a different layout
		_, err = game.PlaceFleet(hostID, suite.OpenWaterFleet())

		require.NoError(t, err)
		_, err = game.PlaceFleet(guestID, suite.OpenWaterFleet())
		require.NoError(t, err)

		// Then: the corner cell the first layout occupied is now water
		result, err := game.Fire(hostID, 0, 0)
		require.NoError(t, err)
		require.True(t, result.Miss)

		result, err = game.Fire(guestID, 0, 0)
		require.NoError(t, err)
		assert.True(t, result.Miss)

		result, err = game.Fire(hostID, 9, 9)
		require.NoError(t, err)
		require.True(t, result.Miss)

		result, err = game.Fire(guestID, 4, 2)
		require.NoError(t, err)
		assert.True(t, result.Hit)
	})

	t.Run("Invalid fleet leaves the player unready", func(t *testing.T) {
		game := entity.NewGame(hostID, guestID, fixedRandom(0))

		// When: the host submits an incomplete layout
		_, err := game.PlaceFleet(hostID, suite.CornerFleet()[:3])

		// Then: the layout is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidPlacement)
		assert.False(t, game.Ready(hostID))
	})

	t.Run("Stranger cannot place a fleet", func(t *testing.T) {
		game := entity.NewGame(hostID, guestID, fixedRandom(0))

		_, err := game.PlaceFleet("stranger", suite.CornerFleet())

		assert.ErrorIs(t, err, apperror.ErrNotInRoom)
	})

	t.Run("Fleets are locked once the game is active", func(t *testing.T) {
		game := newActiveGame(t)

		_, err := game.PlaceFleet(hostID, suite.OpenWaterFleet())

		assert.ErrorIs(t, err, apperror.ErrGameNotActive)
	})
}

func TestGame_Fire(t *testing.T) {
	t.Run("Shots are rejected before the game starts", func(t *testing.T) {
		game := entity.NewGame(hostID, guestID, fixedRandom(0))

		_, err := game.Fire(hostID, 0, 0)

		assert.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Miss passes the turn", func(t *testing.T) {
		game := newActiveGame(t)

		// When: the host misses
		result, err := game.Fire(hostID, 0, 0)

		// Then: the guest is next
		require.NoError(t, err)
		assert.True(t, result.Miss)
		assert.False(t, result.Hit)
		assert.Equal(t, guestID, result.CurrentTurn)
		assert.Equal(t, guestID, game.Turn())
		assert.Equal(t, guestID, result.DefenderID)
		assert.Empty(t, result.SunkShipCells)
		assert.NotNil(t, result.AutoRevealedWater)
	})

	t.Run("Hit keeps the turn", func(t *testing.T) {
		game := newActiveGame(t)

		// When: the host hits the guest battleship
		result, err := game.Fire(hostID, 2, 2)

		// Then: the host fires again
		require.NoError(t, err)
		assert.True(t, result.Hit)
		assert.Nil(t, result.SunkShipID)
		assert.Equal(t, hostID, result.CurrentTurn)
	})

	t.Run("Sinking shot reports the ship and the revealed water", func(t *testing.T) {
		game := newActiveGame(t)

		var result *entity.ShotResult
		for x := 2; x <= 5; x++ {
			var err error
			result, err = game.Fire(hostID, x, 2)
			require.NoError(t, err)
		}

		require.NotNil(t, result.SunkShipID)
		assert.Equal(t, entity.ShipBattleship, *result.SunkShipID)
		assert.Len(t, result.SunkShipCells, 4)
		assert.Len(t, result.AutoRevealedWater, 14)
		assert.False(t, result.GameOver)

		// Then: revealed water cannot be shot again
		_, err := game.Fire(hostID, 1, 1)
		assert.ErrorIs(t, err, apperror.ErrAlreadyTargeted)
	})

	t.Run("Rejections leave the game untouched", func(t *testing.T) {
		game := newActiveGame(t)
		_, err := game.Fire(hostID, 2, 2)
		require.NoError(t, err)

		// When: the guest fires out of turn
		_, err = game.Fire(guestID, 0, 0)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		// When: the host fires off the board
		_, err = game.Fire(hostID, 10, 0)
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)

		// When: the host repeats a shot
		_, err = game.Fire(hostID, 2, 2)
		require.ErrorIs(t, err, apperror.ErrAlreadyTargeted)

		// When: a stranger fires
		_, err = game.Fire("stranger", 0, 0)
		require.ErrorIs(t, err, apperror.ErrNotInRoom)

		// Then: turn and counters are unchanged
		assert.Equal(t, hostID, game.Turn())
		assert.Equal(t, 1, game.Shots(hostID))
		assert.Equal(t, 0, game.Shots(guestID))
	})

	t.Run("Sinking the whole fleet ends the game", func(t *testing.T) {
		game := newActiveGame(t)

		var result *entity.ShotResult
		for _, c := range suite.FleetCells(suite.OpenWaterFleet()) {
			var err error
			result, err = game.Fire(hostID, c.X, c.Y)
			require.NoError(t, err)
		}

		// Then: the host wins after nineteen shots
		assert.True(t, result.GameOver)
		require.NotNil(t, result.WinnerID)
		assert.Equal(t, hostID, *result.WinnerID)
		assert.Equal(t, entity.StatusFinished, game.Status())
		assert.Equal(t, hostID, game.Winner())
		assert.Equal(t, entity.FleetCellCount, game.Shots(hostID))

		// Then: the finished game accepts no more shots
		_, err := game.Fire(hostID, 9, 9)
		assert.ErrorIs(t, err, apperror.ErrGameNotActive)
		_, err = game.Fire(guestID, 9, 9)
		assert.ErrorIs(t, err, apperror.ErrGameNotActive)
	})
}
