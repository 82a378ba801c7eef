package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidJSON(t *testing.T) {
	p, repaired, err := Parse(`{"name":"Test Recipe","servings":4,"tags":["quick","easy"]}`)

	require.NoError(t, err)
	assert.False(t, repaired)
	assert.Equal(t, "Test Recipe", p["name"])
	assert.Equal(t, float64(4), p["servings"])
	assert.Equal(t, []any{"quick", "easy"}, p["tags"])
}

func TestParse_EmptyMeansNoBody(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		p, repaired, err := Parse(raw)

		require.NoError(t, err)
		assert.Nil(t, p)
		assert.False(t, repaired)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	raw := `{"a":{"b":[1,2,3]},"c":null,"d":true,"e":"text"}`

	p, _, err := Parse(raw)
	require.NoError(t, err)

	encoded, err := p.Encode()
	require.NoError(t, err)

	again, _, err := Parse(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestParse_RepairsShellEscapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		key  string
		want string
	}{
		{"escaped space", `{"path":"/tmp/my\ file.zip"}`, "path", "/tmp/my file.zip"},
		{"escaped parens", `{"name":"Dinner\ \(v2\)"}`, "name", "Dinner (v2)"},
		{"escaped ampersand", `{"name":"mac\&cheese"}`, "name", "mac&cheese"},
		{"escaped brackets", `{"name":"tray\[1\]"}`, "name", "tray[1]"},
		{"escaped dollar and pipe", `{"cmd":"a\$b\|c"}`, "cmd", "a$b|c"},
		{"escaped semicolon and redirects", `{"cmd":"a\;b\>c\<d"}`, "cmd", "a;b>c<d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, repaired, err := Parse(tt.raw)

			require.NoError(t, err)
			assert.True(t, repaired)
			assert.Equal(t, tt.want, p[tt.key])
		})
	}
}

func TestParse_RepairedEqualsUnescaped(t *testing.T) {
	// The repair pass must yield exactly the payload a shell-free caller
	// would have sent.
	escaped := `{"archive":"~/My\ Recipes\ \(backup\).zip"}`
	clean := `{"archive":"~/My Recipes (backup).zip"}`

	fromEscaped, repaired, err := Parse(escaped)
	require.NoError(t, err)
	assert.True(t, repaired)

	fromClean, _, err := Parse(clean)
	require.NoError(t, err)

	assert.Equal(t, fromClean, fromEscaped)
}

func TestParse_Malformed(t *testing.T) {
	_, _, err := Parse(`{not json at all`)

	require.Error(t, err)
	var malformed *MalformedPayloadError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, `{not json at all`, malformed.Original)
	assert.NotEmpty(t, malformed.Repaired)
	assert.Error(t, malformed.Err)
}

func TestRepairEscapes(t *testing.T) {
	assert.Equal(t, `{"a":"b c"}`, RepairEscapes(`{"a":"b\ c"}`))
	assert.Equal(t, `plain`, RepairEscapes(`plain`))
}

func TestPayload_Pretty_PreservesNonASCII(t *testing.T) {
	p := Payload{"name": "Crème brûlée"}

	pretty := p.Pretty()

	assert.Contains(t, pretty, "Crème brûlée")
	assert.Contains(t, pretty, "  \"name\"")
}
