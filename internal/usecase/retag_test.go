package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JournalClub/internal/domain"
)

func TestRetag(t *testing.T) {
	t.Parallel()

	store := &fakeStore{artifact: domain.Artifact{
		Sessions: []domain.Session{
			{PMID: "1", Date: "2025-02-01", Title: "Sinus", Subjects: []string{"Stale"}},
			{PMID: "2", Date: "", Title: "Ear"},
		},
		MonthlySummaries: []domain.MonthlySummary{{Month: "2025-02", Headline: "kept"}},
	}}

	freq, err := NewRetagger(store, titleTagger{}, false, nil).Retag(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Sinus"}, store.artifact.Sessions[0].Subjects)
	assert.Equal(t, []string{"Ear"}, store.artifact.Sessions[1].Subjects)
	assert.Equal(t, "kept", store.artifact.MonthlySummaries[0].Headline)
	assert.Equal(t, 1, store.writes)

	require.Len(t, freq, 2)
	assert.Equal(t, "2025-02", freq[0].Month)
	assert.Equal(t, domain.UnknownMonth, freq[1].Month)
	assert.Equal(t, freq, store.subjects)
}

func TestRetagMissingDependency(t *testing.T) {
	t.Parallel()

	_, err := NewRetagger(nil, nil, false, nil).Retag(context.Background())
	assert.ErrorIs(t, err, ErrMissingDependency)
}
