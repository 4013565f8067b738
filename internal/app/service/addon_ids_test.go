package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddonIDs_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *AddonIDs
		wantErr bool
	}{
		{name: "array of numbers", body: `{"addons":[3,1,3]}`, want: addonSet(3, 1)},
		{name: "array of strings", body: `{"addons":["2","5"]}`, want: addonSet(2, 5)},
		{name: "comma string", body: `{"addons":"4, 4,7"}`, want: addonSet(4, 7)},
		{name: "empty string clears", body: `{"addons":""}`, want: addonSet()},
		{name: "empty array clears", body: `{"addons":[]}`, want: addonSet()},
		{name: "absent leaves nil", body: `{}`, want: nil},
		{name: "zero id", body: `{"addons":[0]}`, wantErr: true},
		{name: "garbage token", body: `{"addons":"1,x"}`, wantErr: true},
		{name: "object", body: `{"addons":{"id":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Addons *AddonIDs `json:"addons"`
			}
			err := json.Unmarshal([]byte(tt.body), &payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, payload.Addons)
				return
			}
			require.NotNil(t, payload.Addons)
			assert.Equal(t, append([]uint{}, *tt.want...), append([]uint{}, *payload.Addons...))
		})
	}
}

func TestParseAddonIDs(t *testing.T) {
	ids, err := ParseAddonIDs("[1, 2, 2]")
	require.NoError(t, err)
	assert.Equal(t, AddonIDs{1, 2}, ids)

	ids, err = ParseAddonIDs(" 9 ,8 ")
	require.NoError(t, err)
	assert.Equal(t, AddonIDs{9, 8}, ids)

	ids, err = ParseAddonIDs("")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	_, err = ParseAddonIDs("-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDiffIDs(t *testing.T) {
	add, remove := diffIDs([]uint{1, 2, 3}, []uint{3, 4, 1})
	assert.Equal(t, []uint{4}, add)
	assert.Equal(t, []uint{2}, remove)

	add, remove = diffIDs(nil, nil)
	assert.Empty(t, add)
	assert.Empty(t, remove)
}
