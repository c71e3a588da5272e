package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMarkers(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"empty", "", []string{}},
		{"no brackets", "Write a haiku about spring.", []string{}},
		{"single", "Write about [topic].", []string{"topic"}},
		{"order of first occurrence", "[b] then [a] then [b]", []string{"b", "a"}},
		{"case preserved", "[Goal] and [goal]", []string{"Goal", "goal"}},
		{"spaces in name", "Analyze [content piece] now", []string{"content piece"}},
		{"unmatched open", "Use [tone", []string{}},
		{"empty brackets ignored", "[] and [x]", []string{"x"}},
		{"stray close", "a] [b]", []string{"b"}},
		{"open inside name", "[a [b]", []string{"a [b"}},
		{
			"workout plan",
			"Create a plan for [goal] considering my fitness level [level] and available equipment [equipment].",
			[]string{"goal", "level", "equipment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMarkers(tt.template)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMarkers_Idempotent(t *testing.T) {
	tpl := "Dear [name], about [topic]: [name] [tone"
	first := ExtractMarkers(tpl)
	second := ExtractMarkers(tpl)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"name", "topic"}, first)
}

func TestRender_EmptyFillMapIsIdentity(t *testing.T) {
	for _, tpl := range []string{"", "plain", "Hello [name]", "Use [tone", "[a][b][a]"} {
		assert.Equal(t, tpl, Render(tpl, nil))
		assert.Equal(t, tpl, Render(tpl, FillMap{}))
	}
}

func TestRender_NoBracketsUnchanged(t *testing.T) {
	tpl := "Summarize this article in three bullet points."
	fills := FillMap{"topic": "x", "summarize": "y"}
	assert.Equal(t, tpl, Render(tpl, fills))
	assert.Empty(t, ExtractMarkers(tpl))
}

func TestRender_AllOccurrencesReplaced(t *testing.T) {
	fills := FillMap{}.Set("name", "Sam")
	assert.Equal(t, "Hello Sam, goodbye Sam", Render("Hello [name], goodbye [name]", fills))
}

func TestRender_UnfilledStayLiteral(t *testing.T) {
	tpl := "Write a [type] email about [topic]."
	fills := FillMap{"type": "short", "topic": "   "}
	assert.Equal(t, "Write a short email about [topic].", Render(tpl, fills))
}

func TestRender_ValueInsertedVerbatim(t *testing.T) {
	fills := FillMap{"topic": "  a raise  "}
	assert.Equal(t, "About   a raise  .", Render("About [topic].", fills))
}

func TestRender_ValuesAreInert(t *testing.T) {
	tpl := "Priority: [level]. Owner: [owner]."
	fills := FillMap{}.Set("level", "[owner]").Set("owner", "Kim")
	assert.Equal(t, "Priority: [owner]. Owner: Kim.", Render(tpl, fills))

	fills = FillMap{"level": "[urgent]"}
	out := Render(tpl, fills)
	assert.Equal(t, "Priority: [urgent]. Owner: [owner].", out)
}

func TestRender_UnmatchedBracket(t *testing.T) {
	tpl := "Use [tone"
	assert.Empty(t, ExtractMarkers(tpl))
	assert.Equal(t, tpl, Render(tpl, FillMap{"tone": "calm", "Use": "x"}))
}

func TestAllMarkersFilled(t *testing.T) {
	assert.True(t, AllMarkersFilled(nil, nil))
	assert.True(t, AllMarkersFilled([]string{}, FillMap{"x": ""}))

	goal := []string{"goal"}
	assert.False(t, AllMarkersFilled(goal, FillMap{}))
	assert.False(t, AllMarkersFilled(goal, FillMap{"goal": "  "}))
	assert.False(t, AllMarkersFilled(goal, FillMap{"goal": "\t\n"}))
	assert.True(t, AllMarkersFilled(goal, FillMap{"goal": "ship it"}))
}

func TestMissingMarkers(t *testing.T) {
	markers := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "c"}, MissingMarkers(markers, FillMap{"b": "x", "c": " "}))
	assert.Nil(t, MissingMarkers(markers, FillMap{"a": "1", "b": "2", "c": "3"}))
}

func TestFillMapSet_DoesNotMutate(t *testing.T) {
	original := FillMap{"a": "1"}
	updated := original.Set("a", "2").Set("b", "3")

	assert.Equal(t, FillMap{"a": "1"}, original)
	assert.Equal(t, FillMap{"a": "2", "b": "3"}, updated)

	var empty FillMap
	assert.Equal(t, FillMap{"x": ""}, empty.Set("x", ""))
}

func TestFillMapSet_StoresUntrimmed(t *testing.T) {
	fills := FillMap{}.Set("tone", "  calm ")
	assert.Equal(t, "  calm ", fills["tone"])
	assert.True(t, fills.Filled("tone"))
}

func TestEndToEnd_EmailScenario(t *testing.T) {
	tpl := NewTemplate("Write a [type] email about [topic].")
	require.Equal(t, []string{"type", "topic"}, tpl.Markers())

	fm := FillMap{}
	fm = fm.Set("type", "professional")
	assert.False(t, tpl.Complete(fm))
	assert.Equal(t, []string{"topic"}, tpl.Missing(fm))

	fm = fm.Set("topic", "a raise")
	assert.Equal(t, "Write a professional email about a raise.", tpl.Render(fm))
	assert.True(t, AllMarkersFilled([]string{"type", "topic"}, fm))
	assert.True(t, tpl.Complete(fm))
}

func TestTemplate_MarkersIsACopy(t *testing.T) {
	tpl := NewTemplate("[a] [b]")
	m := tpl.Markers()
	m[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, tpl.Markers())
	assert.True(t, tpl.HasMarkers())
	assert.False(t, NewTemplate("none").HasMarkers())
	assert.Equal(t, "[a] [b]", tpl.String())
}
