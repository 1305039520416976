package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlex_PlainNumber(t *testing.T) {
	f := ParseFlex("42.5")
	v, ok := f.Float()
	require.True(t, ok)
	assert.Equal(t, 42.5, v)
}

func TestParseFlex_Fraction(t *testing.T) {
	f := ParseFlex("1597/100")
	v, ok := f.Float()
	require.True(t, ok)
	assert.InDelta(t, 15.97, v, 1e-9)
}

func TestParseFlex_ZeroDenominator(t *testing.T) {
	f := ParseFlex("5/0")
	assert.False(t, f.Available())
}

func TestParseFlex_Garbage(t *testing.T) {
	assert.False(t, ParseFlex("not a number").Available())
	assert.False(t, ParseFlex("").Available())
	assert.False(t, ParseFlex("1/2/3").Available())
}

func TestFlex_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		available bool
		value     float64
	}{
		{"number", `12.5`, true, 12.5},
		{"numeric string", `"12.5"`, true, 12.5},
		{"fraction string", `"1597/100"`, true, 15.97},
		{"zero denominator", `"5/0"`, false, 0},
		{"null", `null`, false, 0},
		{"garbage string", `"oops"`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flex
			// Decode must never fail: bad values degrade to unavailable.
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.available, f.Available())
			if tt.available {
				assert.InDelta(t, tt.value, f.Or(-1), 1e-9)
			}
		})
	}
}

func TestFlex_UnmarshalJSON_BoolDegrades(t *testing.T) {
	var f Flex
	require.NoError(t, json.Unmarshal([]byte(`true`), &f))
	assert.False(t, f.Available())
}

func TestFlex_MalformedDistinctFromMissing(t *testing.T) {
	// Garbage is flagged; legitimately-missing values are not.
	assert.True(t, ParseFlex("not a number").Malformed())
	assert.True(t, ParseFlex("1/2/3").Malformed())
	assert.False(t, ParseFlex("").Malformed())
	assert.False(t, ParseFlex("5/0").Malformed(), "zero denominator is an undefined ratio, not a malformed shape")

	var f Flex
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.False(t, f.Malformed())
	require.NoError(t, json.Unmarshal([]byte(`true`), &f))
	assert.True(t, f.Malformed())
}

func TestFlex_Format(t *testing.T) {
	assert.Equal(t, "15.97", FlexFrom(15.97).Format(2))
	assert.Equal(t, "16", FlexFrom(15.97).Format(0))
	assert.Equal(t, "N/A", Flex{}.Format(2))
}

func TestFlex_Or(t *testing.T) {
	assert.Equal(t, 7.0, FlexFrom(7).Or(0))
	assert.Equal(t, 0.0, Flex{}.Or(0))
}

func TestFlex_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(FlexFrom(3.5))
	require.NoError(t, err)
	assert.Equal(t, "3.5", string(out))

	out, err = json.Marshal(Flex{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
