package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nightfall/internal/service/ai"
)

func TestParseFields_AllPresent(t *testing.T) {
	fields := ai.ParseFields("Title: X\nStory: Y")
	require.Equal(t, "X", fields.Get(ai.FieldTitle))
	require.Equal(t, "Y", fields.Get(ai.FieldStory))
}

func TestParseFields_MultiLineStory(t *testing.T) {
	raw := "Title: The Last Train\nStory: The platform was empty.\n\nThen the lights went out."
	fields := ai.ParseFields(raw)
	require.Equal(t, "The Last Train", fields.Get(ai.FieldTitle))
	require.Equal(t, "The platform was empty.\n\nThen the lights went out.", fields.Get(ai.FieldStory))
}

func TestParseFields_MissingStory(t *testing.T) {
	fields := ai.ParseFields("Title: Only a title")
	require.Equal(t, "Only a title", fields.Get(ai.FieldTitle))
	require.False(t, fields.Has(ai.FieldStory))
	require.Equal(t, "", fields.Get(ai.FieldStory))
}

func TestParseFields_MissingAll(t *testing.T) {
	fields := ai.ParseFields("I'm sorry, I can't help with that.")
	require.Empty(t, fields)
	require.Equal(t, "", fields.Get(ai.FieldTitle))
	require.Equal(t, "", fields.Get(ai.FieldStory))
}

func TestParseFields_OutOfOrder(t *testing.T) {
	fields := ai.ParseFields("Story: It knocked twice.\nNobody was there.\nTitle: Knock")
	require.Equal(t, "Knock", fields.Get(ai.FieldTitle))
	require.Equal(t, "It knocked twice.\nNobody was there.", fields.Get(ai.FieldStory))
}

func TestParseFields_ExtraWhitespace(t *testing.T) {
	raw := "\n\n   Title:    The Well   \r\n\r\n  Story:\n\n   Something stirred below.   \n\n"
	fields := ai.ParseFields(raw)
	require.Equal(t, "The Well", fields.Get(ai.FieldTitle))
	require.Equal(t, "Something stirred below.", fields.Get(ai.FieldStory))
}

func TestParseFields_CaseInsensitive(t *testing.T) {
	fields := ai.ParseFields("TITLE: Loud\nstory: quiet")
	require.Equal(t, "Loud", fields.Get(ai.FieldTitle))
	require.Equal(t, "quiet", fields.Get(ai.FieldStory))
}

func TestParseFields_FirstMatchWins(t *testing.T) {
	raw := "Title: First\nStory: She read the note.\nTitle: Second\nIt said nothing."
	fields := ai.ParseFields(raw)
	require.Equal(t, "First", fields.Get(ai.FieldTitle))
	require.Equal(t, "She read the note.\nTitle: Second\nIt said nothing.", fields.Get(ai.FieldStory))
}

func TestParseFields_LineAnchored(t *testing.T) {
	fields := ai.ParseFields("The Title: is not a marker here\nStory: body")
	require.False(t, fields.Has(ai.FieldTitle))
	require.Equal(t, "body", fields.Get(ai.FieldStory))
}

func TestParseFields_MarkdownDecoration(t *testing.T) {
	raw := "**Title:** \"The Hollow\"\n\n## Story:\nLeaves whispered her name."
	fields := ai.ParseFields(raw)
	require.Equal(t, "The Hollow", fields.Get(ai.FieldTitle))
	require.Equal(t, "Leaves whispered her name.", fields.Get(ai.FieldStory))
}

func TestParseFields_StripsMarkup(t *testing.T) {
	fields := ai.ParseFields("Title: <b>Bold</b> & Brave\nStory: It's <i>behind</i> you.")
	require.Equal(t, "Bold & Brave", fields.Get(ai.FieldTitle))
	require.Equal(t, "It's behind you.", fields.Get(ai.FieldStory))
}

func TestParseFields_KeepsAngleBracketText(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"shouted sign", "The sign read <KEEP OUT>. I went in anyway."},
		{"aside", "The count was <a few> and rising.\nThen silence."},
		{"unknown tag and comparison", "The door <creaked> open and I saw x<y marks."},
		{"heart", "I <3 you"},
		{"entities", "Tom &amp; Jerry &lt;3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := ai.ParseFields("Title: T\nStory: " + tc.body)
			require.Equal(t, tc.body, fields.Get(ai.FieldStory))
		})
	}
}

func TestParseFields_StripsMarkupKeepsBrackets(t *testing.T) {
	fields := ai.ParseFields("Title: T\nStory: <p>It's <em>behind</em> you <3 and x<y.</p>")
	require.Equal(t, "It's behind you <3 and x<y.", fields.Get(ai.FieldStory))
}

func TestParseFields_OnlyNamedMarkers(t *testing.T) {
	raw := "Story: We checked in at midnight.\nLocation: unknown, said the sign.\nNobody ever checked out."

	fields := ai.ParseFields(raw, ai.FieldTitle, ai.FieldStory)
	require.Equal(t, "We checked in at midnight.\nLocation: unknown, said the sign.\nNobody ever checked out.", fields.Get(ai.FieldStory))
	require.False(t, fields.Has(ai.FieldLocation))

	fields = ai.ParseFields(raw)
	require.Equal(t, "We checked in at midnight.", fields.Get(ai.FieldStory))
	require.Equal(t, "unknown, said the sign.", fields.Get(ai.FieldLocation))
}

func TestParseFields_LocationAndEntity(t *testing.T) {
	raw := "Location: Tower of London\nEntity: Anne Boleyn\n"
	fields := ai.ParseFields(raw)
	require.Equal(t, "Tower of London", fields.Get(ai.FieldLocation))
	require.Equal(t, "Anne Boleyn", fields.Get(ai.FieldEntity))
}

func TestParseFields_EmptyMarker(t *testing.T) {
	fields := ai.ParseFields("Title:\nStory: body")
	require.True(t, fields.Has(ai.FieldTitle))
	require.Equal(t, "", fields.Get(ai.FieldTitle))
	require.Equal(t, "body", fields.Get(ai.FieldStory))
}
