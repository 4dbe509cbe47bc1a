package dnsprobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_ProducesWireBytes(t *testing.T) {
	for _, rt := range []RecordType{TypeNS, TypeA, TypeAAAA} {
		data, err := buildQuery("example.com", rt)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestBuildQuery_DistinctNamesProduceDistinctQueries(t *testing.T) {
	a, err := buildQuery("example.com", TypeNS)
	require.NoError(t, err)
	b, err := buildQuery("example.org", TypeNS)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// A query message carries no answer records — answerCount must round-trip
// a freshly built query back to zero, never error on a message it just built.
func TestAnswerCount_QueryHasNoAnswers(t *testing.T) {
	data, err := buildQuery("example.com", TypeA)
	require.NoError(t, err)

	count, err := answerCount(data)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAnswerCount_InvalidDataErrors(t *testing.T) {
	_, err := answerCount([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestAnswerCount_EmptyDataErrors(t *testing.T) {
	_, err := answerCount(nil)
	assert.Error(t, err)
}
