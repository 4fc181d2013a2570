package handover

import (
	"testing"

	"carewatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_AssignsIDAndTimestamp(t *testing.T) {
	log := NewLog()

	note, err := log.Append(domain.PriorityNormal, "Resident in 201 slept well", "nurse-kim")

	require.NoError(t, err)
	assert.NotEmpty(t, note.NoteID)
	assert.False(t, note.Timestamp.IsZero())
	assert.Equal(t, domain.PriorityNormal, note.Priority)
	assert.Equal(t, "nurse-kim", note.Author)
}

func TestAppend_LengthStrictlyIncreases(t *testing.T) {
	log := NewLog()

	for i := 0; i < 5; i++ {
		before := log.Len()
		_, err := log.Append(domain.PriorityNormal, "note", "author")
		require.NoError(t, err)
		assert.Equal(t, before+1, log.Len())
	}
}

func TestAppend_InvalidPriority(t *testing.T) {
	log := NewLog()

	_, err := log.Append("critical", "note", "author")

	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, log.Len())
}

func TestAppend_EmptyContent(t *testing.T) {
	log := NewLog()

	_, err := log.Append(domain.PriorityUrgent, "", "author")

	assert.True(t, domain.IsValidation(err))
}

func TestUrgent_FilterPreservesOrder(t *testing.T) {
	log := NewLog()

	_, err := log.Append(domain.PriorityUrgent, "first urgent", "a")
	require.NoError(t, err)
	_, err = log.Append(domain.PriorityNormal, "normal", "b")
	require.NoError(t, err)
	_, err = log.Append(domain.PriorityUrgent, "second urgent", "c")
	require.NoError(t, err)

	urgent := log.Urgent()

	require.Len(t, urgent, 2)
	assert.Equal(t, "first urgent", urgent[0].Content)
	assert.Equal(t, "second urgent", urgent[1].Content)
}

func TestAll_ReturnsSnapshot(t *testing.T) {
	log := NewLog()
	_, err := log.Append(domain.PriorityNormal, "note", "author")
	require.NoError(t, err)

	all := log.All()
	all[0].Content = "mutated"

	assert.Equal(t, "note", log.All()[0].Content)
}
