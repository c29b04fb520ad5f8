package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    Money
		wantErr bool
	}{
		{input: "1500.50", want: 150050},
		{input: "1500", want: 150000},
		{input: "0.01", want: 1},
		{input: "0.10", want: 10},
		{input: "-25.00", want: -2500},
		{input: "1.999", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseMoney(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "1500.50", Money(150050).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Money(250075))
	require.NoError(t, err)
	assert.Equal(t, `"2500.75"`, string(out))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"2500.75"`), &m))
	assert.Equal(t, Money(250075), m)

	// Bare numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`120`), &m))
	assert.Equal(t, Money(12000), m)

	assert.Error(t, json.Unmarshal([]byte(`"10.123"`), &m))
}

func TestRepeatedAdditionDoesNotDrift(t *testing.T) {
	// 0.10 added a thousand times is exactly 100.00 in minor units.
	var total Money
	step, err := ParseMoney("0.10")
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		total += step
	}
	assert.Equal(t, Money(10000), total)
	assert.Equal(t, "100.00", total.String())
}
