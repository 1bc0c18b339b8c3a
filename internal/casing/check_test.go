package casing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/casing"
)

func newChecker(project ...string) *casing.Checker {
	return casing.NewChecker(casing.NewList(casing.CoreWords, project), casing.CautiousWords)
}

func fixed(c *casing.Checker, s string) string {
	return casing.Apply(s, c.Check(s).Fixes)
}

func TestCheckWordBoundaries(t *testing.T) {
	c := newChecker()
	assert.Equal(t, "rapid apid apis API", fixed(c, "rapid apid apis api"))
	assert.Equal(t, "Friday meeting", fixed(c, "friday meeting"))
	assert.Empty(t, c.Check("Its Friday!").Fixes)
	assert.Equal(t, "Connect to WordPress via the REST API", fixed(c, "Connect to wordpress via the REST api"))
}

func TestCheckPhrasesLongestFirst(t *testing.T) {
	c := newChecker()
	assert.Equal(t, "Send a row to Google Sheets", fixed(c, "Send a row to google sheets"))
	assert.Equal(t, "Uncanny Automator Pro is active", fixed(c, "uncanny automator pro is active"))
	// punctuation between the words breaks the phrase; single words still apply
	assert.Equal(t, "Google, sheets", fixed(c, "google, sheets"))
}

func TestCheckProjectWordsOverrideCore(t *testing.T) {
	c := newChecker("Mailchimp Transactional", "HUBSPOT")
	assert.Equal(t, "Use Mailchimp Transactional", fixed(c, "Use mailchimp transactional"))
	assert.Equal(t, "Sync HUBSPOT contacts", fixed(c, "Sync HubSpot contacts"))
}

func TestCheckSkips(t *testing.T) {
	c := newChecker()
	for _, s := range []string{
		"https://api.example",
		"see example.com",
		"F j, Y",
		"Y-m-d",
		"g:i a",
		"API_KEY",
		"some_api_field",
		"<strong>api</strong>",
		"config.json",
		"   ",
	} {
		a := c.Check(s)
		assert.NotEmpty(t, a.Skip, s)
		assert.Empty(t, a.Fixes, s)
	}
}

func TestDateFormatIsCaseSensitive(t *testing.T) {
	assert.True(t, casing.IsDateFormat("F j, Y"))
	assert.True(t, casing.IsDateFormat("d/m/Y H"[:5]))
	assert.False(t, casing.IsDateFormat("to do"))
	assert.False(t, casing.IsDateFormat("Done"))
}

func TestCheckCautiousWords(t *testing.T) {
	c := newChecker()
	a := c.Check("Enter your id and the rest endpoint")
	assert.Empty(t, a.Fixes)
	require.Len(t, a.Warnings, 2)
	assert.Equal(t, "ID", a.Warnings[0].Want)
	assert.Equal(t, "REST", a.Warnings[1].Want)

	assert.Empty(t, c.Check("The ID is valid").Warnings)
}

func TestMayPolicy(t *testing.T) {
	tests := []struct {
		prev, next string
		want       casing.MayVerdict
	}{
		{"in", "", casing.MayMonth},
		{"until", "5", casing.MayMonth},
		{"", "2024", casing.MayMonth},
		{"you", "need", casing.MayModal},
		{"this", "", casing.MayModal},
		{"", "not", casing.MayModal},
		{"", "", casing.MayAmbiguous},
		{"sale", "offers", casing.MayAmbiguous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, casing.ClassifyMay(tt.prev, tt.next), "%q may %q", tt.prev, tt.next)
	}
}

func TestCheckMay(t *testing.T) {
	c := newChecker()

	a := c.Check("Runs every day in may")
	require.Len(t, a.Fixes, 1)
	assert.Equal(t, "Runs every day in May", casing.Apply("Runs every day in may", a.Fixes))

	a = c.Check("This may take a while")
	assert.Empty(t, a.Fixes)
	assert.Empty(t, a.Warnings)

	a = c.Check("Sale may offers")
	assert.Empty(t, a.Fixes)
	require.Len(t, a.Warnings, 1)
	assert.Equal(t, "May", a.Warnings[0].Want)
}

func TestDescribe(t *testing.T) {
	c := newChecker()
	a := c.Check("api and api and php")
	assert.Equal(t, `"api" should be "API", "php" should be "PHP"`, casing.Describe(a.Fixes, "should be"))
	assert.Len(t, a.Fixes, 3)
}

func TestSentenceCase(t *testing.T) {
	c := newChecker()

	res := c.SentenceCase("Send An Email To The User")
	assert.Equal(t, []string{"An", "Email", "To", "The", "User"}, res.Capitalized)
	assert.Equal(t, "Send an email to the user", res.Fixed)

	res = c.SentenceCase("add a Row In Google Sheets via API")
	assert.Equal(t, []string{"Row", "In"}, res.Capitalized)
	assert.Equal(t, "Add a row in Google Sheets via API", res.Fixed)

	res = c.SentenceCase("Publish on Friday in May")
	assert.Empty(t, res.Capitalized)
	assert.Equal(t, "Publish on Friday in May", res.Fixed)

	res = c.SentenceCase("Sync rows with Google\nnow")
	assert.Empty(t, res.Capitalized)
	assert.Equal(t, "Sync rows with Google\nnow", res.Fixed)

	res = c.SentenceCase("  Send\tAn\n\nEmail  ")
	assert.Equal(t, []string{"An", "Email"}, res.Capitalized)
	assert.Equal(t, "  Send\tan\n\nemail  ", res.Fixed)

	res = c.SentenceCase("add rows to Google\nSheets")
	assert.Empty(t, res.Capitalized)
	assert.Equal(t, "Add rows to Google\nSheets", res.Fixed)

	assert.True(t, casing.IsPlainSentence("It's done"))
	assert.False(t, casing.IsPlainSentence("Done!"))
	assert.False(t, casing.IsPlainSentence("a"))
}

func TestSentenceCaseKeepsProtectedFirstWord(t *testing.T) {
	c := newChecker("eBay")
	res := c.SentenceCase("eBay Sync Tool")
	assert.Equal(t, []string{"Sync", "Tool"}, res.Capitalized)
	assert.Equal(t, "eBay sync tool", res.Fixed)
	assert.Equal(t, res.Fixed, c.SentenceCase(res.Fixed).Fixed)
}

func TestMemoCachesAnalyses(t *testing.T) {
	m := casing.NewMemo(newChecker(), 8)
	first := m.Check("use the api")
	second := m.Check("use the api")
	assert.Equal(t, first, second)

	hits, misses := m.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}
