package codec

import (
	"testing"

	"github.com/hupe1980/binparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_EntryWireFormat(t *testing.T) {
	e := binparse.StringTableEntry{String: "Grüße", Offset: 12}
	want := `{"string":"Grüße","offset":12}`

	assert.JSONEq(t, want, string(MustMarshal(JSON{}, e)))
	assert.JSONEq(t, want, string(MustMarshal(GoJSON{}, e)))
	assert.JSONEq(t, want, string(MustMarshal(nil, e)))

	out, err := GoJSON{}.Append([]byte("["), e)
	require.NoError(t, err)
	assert.JSONEq(t, "["+want+"]", string(append(out, ']')))

	var got binparse.StringTableEntry
	require.NoError(t, GoJSON{}.Unmarshal([]byte(want), &got))
	assert.Equal(t, e, got)
}
