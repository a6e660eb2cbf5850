package sysconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElectionWindow(t *testing.T) {
	window, err := ParseElectionWindow(`{"year": 2026, "from": "2026-03-01", "to": "2026-03-15", "start": true}`)
	require.NoError(t, err)
	assert.Equal(t, 2026, window.Year)
	assert.Equal(t, "2026-03-01", window.From)
	assert.Equal(t, "2026-03-15", window.To)
	assert.True(t, window.Start)
}

func TestParseElectionWindow_RejectsBadBlobs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "yes please"},
		{"missing fields", `{"year": 2026}`},
		{"year out of range", `{"year": 99, "from": "a", "to": "b", "start": false}`},
		{"unknown field", `{"year": 2026, "from": "a", "to": "b", "start": false, "extra": 1}`},
		{"wrong type", `{"year": "2026", "from": "a", "to": "b", "start": false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseElectionWindow(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestElectionWindow_SerializeRoundTrip(t *testing.T) {
	original := ElectionWindow{Year: 2026, From: "2026-03-01", To: "2026-03-15", Start: true}

	raw, err := original.Serialize()
	require.NoError(t, err)

	parsed, err := ParseElectionWindow(raw)
	require.NoError(t, err)
	assert.Equal(t, original, *parsed)
}

func TestMemberList_AddDeduplicates(t *testing.T) {
	list := NewMemberList([]string{"1001", " 1002 ", "1001", ""})

	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []string{"1001", "1002"}, list.Values())
	assert.True(t, list.Contains("1002"))
	assert.False(t, list.Contains("1003"))

	assert.False(t, list.Add("1001"))
	assert.True(t, list.Add("1003"))
}

func TestMemberList_Remove(t *testing.T) {
	list := NewMemberList([]string{"1001", "1002", "1003"})

	assert.True(t, list.Remove("1002"))
	assert.False(t, list.Remove("1002"))
	assert.Equal(t, []string{"1001", "1003"}, list.Values())
}

func TestParseMemberList(t *testing.T) {
	list, err := ParseMemberList(`["1001", "1002"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002"}, list.Values())

	_, err = ParseMemberList(`{"not": "an array"}`)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ParseMemberList(`[""]`)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMemberList_SerializeEmptyList(t *testing.T) {
	raw, err := NewMemberList(nil).Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
