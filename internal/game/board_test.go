package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeComposition(t *testing.T) {
	// o sorteio não pode alterar a composição: sempre 8 win e 8 lose
	for run := 0; run < 50; run++ {
		b := NewBoard()

		wins, loses := 0, 0
		for _, name := range GroupNames {
			row := b.Tokens(name)
			require.Len(t, row, GroupSize)
			for _, tok := range row {
				assert.True(t, !tok.Taken, "token deve começar disponível")
				switch tok.Kind {
				case KindWin:
					wins++
					assert.Equal(t, WinPoints, tok.Points)
				case KindLose:
					loses++
					assert.Equal(t, LosePoints, tok.Points)
				default:
					t.Fatalf("kind inesperado: %q", tok.Kind)
				}
			}
		}
		assert.Equal(t, 8, wins)
		assert.Equal(t, 8, loses)
		assert.Equal(t, 0, b.TakenCount())
	}
}

func TestRevealIdempotent(t *testing.T) {
	b := NewBoard()

	points, ok := b.Reveal(GroupDiamonds, 0)
	require.True(t, ok)
	assert.Contains(t, []int64{WinPoints, LosePoints}, points)
	assert.Equal(t, 1, b.TakenCount())

	// segunda revelação da mesma célula é no-op silencioso
	points2, ok2 := b.Reveal(GroupDiamonds, 0)
	assert.False(t, ok2)
	assert.Zero(t, points2)
	assert.Equal(t, 1, b.TakenCount())
}

func TestRevealInvalidPosition(t *testing.T) {
	b := NewBoard()

	_, ok := b.Reveal("no-such-group", 0)
	assert.False(t, ok)

	_, ok = b.Reveal(GroupRubies, -1)
	assert.False(t, ok)

	_, ok = b.Reveal(GroupRubies, GroupSize)
	assert.False(t, ok)

	assert.Equal(t, 0, b.TakenCount())
}

func TestInitializeReplacesBoard(t *testing.T) {
	b := NewBoard()
	for i := 0; i < GroupSize; i++ {
		_, ok := b.Reveal(GroupTrophies, i)
		require.True(t, ok)
	}
	require.Equal(t, GroupSize, b.TakenCount())

	b.Initialize()
	assert.Equal(t, 0, b.TakenCount())
}
