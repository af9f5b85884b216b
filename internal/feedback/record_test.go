package feedback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMergeKeepsUnspecifiedFields(t *testing.T) {
	r := Record{Rating: Int(4), ImprovementText: "ok"}

	merged := r.Merge(Patch{InterestedInResearch: Bool(true)})

	assert.Equal(t, 4, merged.RatingValue())
	assert.Equal(t, "ok", merged.ImprovementText)
	assert.True(t, merged.Interested())
	assert.Equal(t, "", merged.Email)
}

func TestRecordMergeDoesNotAliasPatch(t *testing.T) {
	rating := 2
	merged := Record{}.Merge(Patch{Rating: &rating})
	rating = 5

	assert.Equal(t, 2, merged.RatingValue())
}

func TestRecordClone(t *testing.T) {
	r := Record{Rating: Int(3), InterestedInResearch: Bool(true)}
	c := r.Clone()
	*c.Rating = 1
	*c.InterestedInResearch = false

	assert.Equal(t, 3, r.RatingValue())
	assert.True(t, r.Interested())
}

func TestRecordIsZero(t *testing.T) {
	assert.True(t, Record{}.IsZero())
	assert.False(t, Record{ImprovementText: "x"}.IsZero())
}

func TestSnapshotIncludesEmailOnlyWhenInterested(t *testing.T) {
	interested := Record{
		Rating:               Int(5),
		ImprovementText:      "Great!",
		InterestedInResearch: Bool(true),
		Email:                "user@example.com",
	}
	data, err := json.Marshal(interested.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":5,"improvementText":"Great!","interestedInResearch":true,"email":"user@example.com"}`, string(data))

	notInterested := Record{Rating: Int(2), InterestedInResearch: Bool(false), Email: "stale@example.com"}
	data, err = json.Marshal(notInterested.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":2,"improvementText":"","interestedInResearch":false}`, string(data))
}

func TestSnapshotTreatsUnsetInterestAsFalse(t *testing.T) {
	p := Record{Rating: Int(3)}.Snapshot()
	assert.False(t, p.InterestedInResearch)
	assert.Empty(t, p.Email)
}

func TestReceiptAccepted(t *testing.T) {
	var nilReceipt *Receipt
	assert.False(t, nilReceipt.Accepted())
	assert.True(t, (&Receipt{Status: 200}).Accepted())
	assert.True(t, (&Receipt{Status: 201}).Accepted())
	assert.False(t, (&Receipt{Status: 202}).Accepted())
	assert.False(t, (&Receipt{Status: 500}).Accepted())
}
