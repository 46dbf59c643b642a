package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

func TestParse_Empty(t *testing.T) {
	steps, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, steps, "empty expression is the identity path")
}

func TestParse_SingleKey(t *testing.T) {
	steps, err := Parse("[name]")
	require.NoError(t, err)
	assert.Equal(t, []Step{{Kind: StepKey, Key: "name"}}, steps)
}

func TestParse_MixedSteps(t *testing.T) {
	steps, err := Parse("[key][0][term][-1]")
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{Kind: StepKey, Key: "key"},
		{Kind: StepIndex, Index: 0},
		{Kind: StepKey, Key: "term"},
		{Kind: StepIndex, Index: -1},
	}, steps)
}

func TestParse_KeysAreVerbatim(t *testing.T) {
	steps, err := Parse("[ Spaced Key ][MiXeD]")
	require.NoError(t, err)
	assert.Equal(t, " Spaced Key ", steps[0].Key, "no trimming")
	assert.Equal(t, "MiXeD", steps[1].Key, "no case folding")
}

func TestParse_NumericLookalikes(t *testing.T) {
	// Tokens that almost match the index grammar stay keys.
	for _, token := range []string{"1.5", "+3", "-", "1e3", "07a", "- 1"} {
		steps, err := Parse("[" + token + "]")
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, StepKey, steps[0].Kind, "token %q must be a key", token)
		assert.Equal(t, token, steps[0].Key)
	}
	// Leading zeros still match `-?[0-9]+`.
	steps, err := Parse("[007]")
	require.NoError(t, err)
	assert.Equal(t, Step{Kind: StepIndex, Index: 7}, steps[0])
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		expr string
	}{
		{"empty bracket", "[]"},
		{"empty bracket inside", "[a][][b]"},
		{"unterminated", "[a"},
		{"unterminated nested open", "[a[b]"},
		{"leading garbage", "x[a]"},
		{"trailing garbage", "[a]x"},
		{"separator between groups", "[a].[b]"},
		{"bare close bracket", "]"},
		{"index overflow", "[99999999999999999999999]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.expr)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tc.expr, syntaxErr.Expr)
			assert.NotEmpty(t, syntaxErr.Fragment)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	// Same input, same output, every run — for both outcomes.
	first, err1 := Parse("[a][-2][b]")
	second, err2 := Parse("[a][-2][b]")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)

	_, errA := Parse("[a][")
	_, errB := Parse("[a][")
	require.Error(t, errA)
	assert.Equal(t, errA.Error(), errB.Error())
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "[name]", Step{Kind: StepKey, Key: "name"}.String())
	assert.Equal(t, "[-1]", Step{Kind: StepIndex, Index: -1}.String())
}

func TestMustParse_PanicsOnBadExpr(t *testing.T) {
	assert.Panics(t, func() { MustParse("[") })
	assert.NotPanics(t, func() { MustParse("[ok]") })
}

// ---------------------------------------------------------------------------
// Fuzz
// ---------------------------------------------------------------------------

func FuzzParse(f *testing.F) {
	f.Add("[key][0][term][-1]")
	f.Add("[]")
	f.Add("[a")
	f.Add("")
	f.Fuzz(func(t *testing.T, expr string) {
		steps, err := Parse(expr)
		if err != nil {
			return
		}
		// Whatever parses must survive a resolution attempt without panicking.
		_ = Resolve(map[string]any{"key": []any{1}}, steps)
	})
}
