package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesAnswerAndOptions(t *testing.T) {
	q := New(3, "  2+2?  ", "  Four ", TypeMultipleChoice, []string{" three", "Four ", "five", "six"})

	assert.Equal(t, 3, q.ID)
	assert.Equal(t, "2+2?", q.Text)
	assert.Equal(t, "four", q.Answer)
	assert.Equal(t, []string{"three", "Four", "five", "six"}, q.Options)
	assert.True(t, q.Active)
	assert.Zero(t, q.ShowCount)
	assert.Zero(t, q.CorrectCount)
}

func TestNewFreeFormDropsOptions(t *testing.T) {
	q := New(1, "keyword for functions?", "DEF", TypeFreeForm, []string{"ignored"})
	assert.Equal(t, "def", q.Answer)
	assert.Empty(t, q.Options)
}

func TestJSONRoundTrip(t *testing.T) {
	questions := []Question{
		{ID: 1, Text: "What keyword is used to define a function in Python?", Answer: "def",
			Type: TypeFreeForm, Options: []string{}, Active: true, ShowCount: 5, CorrectCount: 3},
		{ID: 2, Text: "2+2?", Answer: "4", Type: TypeMultipleChoice,
			Options: []string{"3", "4", "5", "6"}, Active: false, ShowCount: 0, CorrectCount: 0},
	}
	for _, q := range questions {
		data, err := json.Marshal(q)
		require.NoError(t, err)

		var got Question
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, q, got)
	}
}

func TestMarshalUsesRecordFieldNames(t *testing.T) {
	data, err := json.Marshal(New(1, "q", "a", TypeFreeForm, nil))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t,
		[]string{"id", "text", "answer", "type", "options", "active", "show_count", "correct_count"},
		keys(fields))
	assert.Equal(t, []any{}, fields["options"])
	assert.Equal(t, float64(0), fields["show_count"])
}

func TestUnmarshalDefaultsMissingFields(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "text": "t", "answer": "a", "type": "free_form"}`), &q))

	assert.True(t, q.Active)
	assert.Zero(t, q.ShowCount)
	assert.Zero(t, q.CorrectCount)
	assert.Equal(t, []string{}, q.Options)
}

func TestUnmarshalKeepsExplicitInactive(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "active": false, "show_count": 4, "correct_count": 1}`), &q))
	assert.False(t, q.Active)
	assert.Equal(t, 4, q.ShowCount)
	assert.Equal(t, 1, q.CorrectCount)
}

func TestCorrectRate(t *testing.T) {
	q := Question{}
	assert.Zero(t, q.CorrectRate(), "never shown must not divide by zero")

	q = Question{ShowCount: 4, CorrectCount: 3}
	assert.InDelta(t, 75.0, q.CorrectRate(), 1e-9)
}

func TestWeight(t *testing.T) {
	cases := []struct {
		name           string
		shown, correct int
		want           int
	}{
		{"never shown", 0, 0, 1},
		{"always right", 10, 10, 1},
		{"one miss", 3, 2, 1},
		{"ten misses", 10, 0, 10},
		{"mixed", 7, 2, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Question{ShowCount: tc.shown, CorrectCount: tc.correct}
			assert.Equal(t, tc.want, q.Weight())
		})
	}
}

func TestIncrementCorrectNeverPassesShown(t *testing.T) {
	q := Question{}
	q.IncrementCorrect()
	assert.Zero(t, q.CorrectCount)

	q.IncrementShown()
	q.IncrementCorrect()
	q.IncrementCorrect()
	assert.Equal(t, 1, q.ShowCount)
	assert.Equal(t, 1, q.CorrectCount)
}

func TestCloneDoesNotShareOptions(t *testing.T) {
	q := New(1, "q", "a", TypeMultipleChoice, []string{"a", "b", "c", "d"})
	c := q.Clone()
	c.Options[0] = "changed"
	assert.Equal(t, "a", q.Options[0])
}

func TestValidate(t *testing.T) {
	valid := New(1, "2+2?", "4", TypeMultipleChoice, []string{"3", "4", "5", "6"})
	assert.NoError(t, valid.Validate())

	cases := map[string]Question{
		"zero id":         {ID: 0, Text: "t", Answer: "a", Type: TypeFreeForm},
		"empty text":      {ID: 1, Text: " ", Answer: "a", Type: TypeFreeForm},
		"empty answer":    {ID: 1, Text: "t", Answer: "", Type: TypeFreeForm},
		"unknown type":    {ID: 1, Text: "t", Answer: "a", Type: "essay"},
		"three options":   {ID: 1, Text: "t", Answer: "a", Type: TypeMultipleChoice, Options: []string{"a", "b", "c"}},
		"answer missing":  {ID: 1, Text: "t", Answer: "z", Type: TypeMultipleChoice, Options: []string{"a", "b", "c", "d"}},
		"free form opts":  {ID: 1, Text: "t", Answer: "a", Type: TypeFreeForm, Options: []string{"a"}},
		"correct > shown": {ID: 1, Text: "t", Answer: "a", Type: TypeFreeForm, ShowCount: 1, CorrectCount: 2},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			err := q.Validate()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
