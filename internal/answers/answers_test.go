package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const bothSolved = `
<article class="day-desc"><h2>--- Day 5: Print Queue ---</h2>
<p>Some intro text with <code>rules</code> inline.</p></article>
<p>Your puzzle answer was <code>4281</code>.</p>
<article class="day-desc"><h2>--- Part Two ---</h2>
<p>More text.</p></article>
<p>Your puzzle answer was <code>5466</code>.</p>
<p class="day-success">Both parts of this puzzle are complete!</p>
`

const oneSolved = `
<article class="day-desc"><p>Intro.</p></article>
<p>Your puzzle answer was <code>4281</code>.</p>
<article class="day-desc"><h2>--- Part Two ---</h2></article>
`

func TestLoad(t *testing.T) {
	t.Run("no answers in fresh instructions", func(t *testing.T) {
		state := Load(`<article><p>To begin, get your puzzle input.</p></article>`)
		assert.False(t, state.HasOne())
		assert.False(t, state.HasTwo())
		assert.False(t, state.Complete())
	})

	t.Run("part one only", func(t *testing.T) {
		state := Load(oneSolved)
		assert.Equal(t, "4281", state.PartOne)
		assert.Empty(t, state.PartTwo)
		assert.True(t, state.Known(1))
		assert.False(t, state.Known(2))
	})

	t.Run("both parts", func(t *testing.T) {
		state := Load(bothSolved)
		assert.Equal(t, "4281", state.PartOne)
		assert.Equal(t, "5466", state.PartTwo)
		assert.True(t, state.Complete())
	})

	t.Run("inline code in prose is not an answer", func(t *testing.T) {
		state := Load(`<p>Use the <code>not-an-answer</code> operator.</p>`)
		assert.False(t, state.HasOne())
	})

	t.Run("idempotent over identical input", func(t *testing.T) {
		first := Load(bothSolved)
		second := Load(bothSolved)
		assert.Equal(t, first, second)
	})
}
