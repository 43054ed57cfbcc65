package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResponse_DisplayNameShapes(t *testing.T) {
	payload := `{"businesses":[
		{"id":"1","displayName":"Joe's Diner","formattedAddress":"123 Main St","rating":4.5,"userRatingCount":120},
		{"id":"2","displayName":{"text":"Blue Door Cafe","languageCode":"en"}},
		{"id":"3","displayName":null}
	],"count":3,"hasMore":false}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	require.Len(t, resp.Businesses, 3)

	assert.Equal(t, DisplayName("Joe's Diner"), resp.Businesses[0].DisplayName)
	assert.Equal(t, 4.5, resp.Businesses[0].Rating)
	assert.Equal(t, 120, resp.Businesses[0].UserRatingCount)
	assert.Equal(t, DisplayName("Blue Door Cafe"), resp.Businesses[1].DisplayName)
	assert.Equal(t, DisplayName(""), resp.Businesses[2].DisplayName)
}

func TestSEOScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		expected   int
		withDetail bool
		wantErr    bool
	}{
		{name: "Bare integer", payload: `72`, expected: 72},
		{name: "Bare float rounds", payload: `71.6`, expected: 72},
		{name: "Zero is a score", payload: `0`, expected: 0},
		{
			name:       "Nested object uses percentage",
			payload:    `{"score":{"score":7,"max_score":10,"percentage":70.0},"title_tag":{"status":"Good"}}`,
			expected:   70,
			withDetail: true,
		},
		{
			name:       "Flat object uses percentage",
			payload:    `{"score":17,"max_score":20,"percentage":85.0}`,
			expected:   85,
			withDetail: true,
		},
		{name: "Null", payload: `null`, wantErr: true},
		{name: "Object without score", payload: `{"title_tag":{"status":"ok"}}`, wantErr: true},
		{name: "Text", payload: `"high"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var score SEOScore
			err := json.Unmarshal([]byte(tt.payload), &score)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score.Value)
			assert.Equal(t, tt.withDetail, score.Detail != nil)
		})
	}
}

func TestWebsiteAudit_UnmarshalJSON(t *testing.T) {
	t.Run("Nested score with checks", func(t *testing.T) {
		payload := `{"score":{"score":6,"max_score":8,"percentage":75},
			"title_tag":{"status":"Present"},"meta_description":{"status":"Missing"},
			"language":{"status":"en"},"images":{"total_images":12,"missing_alt":3}}`

		var audit WebsiteAudit
		require.NoError(t, json.Unmarshal([]byte(payload), &audit))
		require.NotNil(t, audit.Score)
		assert.Equal(t, 6.0, audit.Score.Score)
		assert.Equal(t, 8.0, audit.Score.MaxScore)
		assert.Equal(t, 75.0, audit.Score.Percentage)
		assert.Equal(t, "Present", audit.TitleTag.Status)
		assert.Equal(t, "Missing", audit.MetaDescription.Status)
		assert.Equal(t, 12, audit.Images.TotalImages)
		assert.Equal(t, 3, audit.Images.MissingAlt)
	})

	t.Run("Flat score derives percentage", func(t *testing.T) {
		var audit WebsiteAudit
		require.NoError(t, json.Unmarshal([]byte(`{"score":3,"max_score":4}`), &audit))
		require.NotNil(t, audit.Score)
		assert.Equal(t, 75.0, audit.Score.Percentage)
		assert.Nil(t, audit.TitleTag)
	})

	t.Run("No score", func(t *testing.T) {
		var audit WebsiteAudit
		require.NoError(t, json.Unmarshal([]byte(`{"language":{"status":"fr"}}`), &audit))
		assert.Nil(t, audit.Score)
		assert.Equal(t, "fr", audit.Language.Status)
	})
}

func TestAISummary_UnmarshalJSON(t *testing.T) {
	payload := `{
		"business_summary":"Family-owned diner.",
		"red_flags":[["No website","The business has no website."],["Few photos"]],
		"fb_followers":[["PageName",15000]],
		"ig_followers":[["@joes","1.2K"]]
	}`

	var summary AISummary
	require.NoError(t, json.Unmarshal([]byte(payload), &summary))

	assert.Equal(t, "Family-owned diner.", summary.BusinessSummary)
	require.Len(t, summary.RedFlags, 2)
	assert.Equal(t, RedFlag{Label: "No website", Detail: "The business has no website."}, summary.RedFlags[0])
	assert.Equal(t, RedFlag{Label: "Few photos"}, summary.RedFlags[1])

	require.Len(t, summary.FBFollowers, 1)
	assert.Equal(t, Followers{Handle: "PageName", Count: 15000, Numeric: true}, summary.FBFollowers[0])

	require.Len(t, summary.IGFollowers, 1)
	assert.Equal(t, Followers{Handle: "@joes", Text: "1.2K"}, summary.IGFollowers[0])
}

func TestAISummary_MissingOptionalFields(t *testing.T) {
	var summary AISummary
	require.NoError(t, json.Unmarshal([]byte(`{"business_summary":"x"}`), &summary))
	assert.Nil(t, summary.RedFlags)
	assert.Nil(t, summary.FBFollowers)
	assert.Nil(t, summary.IGFollowers)
}

func TestFollowers_NumericString(t *testing.T) {
	var f Followers
	require.NoError(t, json.Unmarshal([]byte(`["page","2500"]`), &f))
	assert.True(t, f.Numeric)
	assert.Equal(t, 2500.0, f.Count)
}

func TestUser_DisplayLabel(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayLabel())
	assert.Equal(t, "Ada", (&User{Name: "Ada", Email: "ada@example.com"}).DisplayLabel())
	assert.Equal(t, "ada@example.com", (&User{Email: "ada@example.com"}).DisplayLabel())
}
