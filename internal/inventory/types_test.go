package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Age
		wantErr bool
	}{
		{`5`, 5, false},
		{`2.5`, 2.5, false},
		{`"7"`, 7, false},
		{`" 3 "`, 3, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"old"`, 0, true},
		{`"NaN"`, 0, true},
		{`"-Inf"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			var a Age
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestAgeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "5", Age(5).String())
	assert.Equal(t, "2.5", Age(2.5).String())
}

func TestParseAge(t *testing.T) {
	t.Parallel()
	a, err := ParseAge(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, Age(4), a)

	for _, bad := range []string{"four", "", "NaN", "nan", "Inf", "+Inf", "-Infinity"} {
		_, err = ParseAge(bad)
		assert.Error(t, err, "ParseAge(%q)", bad)
	}
}

func TestAnimalInputEncodesAgeAsNumber(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(AnimalInput{Name: "Leo", Species: "Lion", Age: 5, Habitat: "Savanna"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Leo","species":"Lion","age":5,"habitat":"Savanna"}`, string(data))
}
