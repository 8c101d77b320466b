package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRecordUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantPMID string
		wantDate string
	}{
		{
			name:     "string pmid",
			input:    `{"PMID": " 40001234 ", "Publication_Date": "2025-Oct-31"}`,
			wantPMID: "40001234",
			wantDate: "2025-Oct-31",
		},
		{
			name:     "numeric pmid",
			input:    `{"PMID": 40001234, "PublicationDate": "2025-Oct"}`,
			wantPMID: "40001234",
			wantDate: "2025-Oct",
		},
		{
			name:     "underscore key preferred",
			input:    `{"PMID": "1", "Publication_Date": "2024-01-01", "PublicationDate": "1999-01-01"}`,
			wantPMID: "1",
			wantDate: "2024-01-01",
		},
		{
			name:     "empty underscore key falls back",
			input:    `{"PMID": "1", "Publication_Date": "", "PublicationDate": "1999-01-01"}`,
			wantPMID: "1",
			wantDate: "1999-01-01",
		},
		{
			name:     "null fields",
			input:    `{"PMID": null, "Title": null}`,
			wantPMID: "",
			wantDate: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rec ArticleRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.wantPMID, rec.PMID)
			assert.Equal(t, tt.wantDate, rec.PublicationDate)
		})
	}
}

func TestArtifactNormalizedUsesEmptyLists(t *testing.T) {
	t.Parallel()

	art := Artifact{
		Sessions:         []Session{{PMID: "1"}},
		MonthlySummaries: []MonthlySummary{{Month: "2025-01"}},
	}

	data, err := json.Marshal(art.Normalized())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subjects":[]`)
	assert.Contains(t, string(data), `"images":[]`)
	assert.Contains(t, string(data), `"key_highlights":[]`)
	assert.Nil(t, art.Sessions[0].Subjects, "original must stay untouched")
}
