package core

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("model:hello")
	b := IDFromContent("model:hello")
	c := IDFromContent("model:hello!")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestEntryFromFields(t *testing.T) {
	entry := EntryFromFields(map[string]string{
		"Title":       "  Star Wars ",
		"Director":    "George Lucas",
		"Year Binned": "1970s",
		"Unknown":     "ignored",
	})

	assert.Equal(t, "Star Wars", entry.Title)
	assert.Equal(t, "George Lucas", entry.Director)
	assert.Equal(t, "", entry.Cast)
	assert.Equal(t, "", entry.Year)
	assert.Equal(t, "1970s", entry.YearBinned)
}

func TestEntryDisplayYear(t *testing.T) {
	e := Entry{Year: "1977", YearBinned: "1970s"}
	assert.Equal(t, "1977", e.DisplayYear())

	e.Year = ""
	assert.Equal(t, "1970s", e.DisplayYear())
}

func TestResultJSON(t *testing.T) {
	score := 0.5
	data, err := json.Marshal(Result{Title: "Heat", Year: "1995", Score: &score})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Heat", decoded["Title"])
	assert.Equal(t, 0.5, decoded["Score"])
	assert.NotContains(t, decoded, "Poster")

	data, err = json.Marshal(Result{Title: "Heat"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "Score")
	assert.Nil(t, decoded["Score"])
}
