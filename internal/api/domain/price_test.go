package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		want  Price
		isErr error
	}{
		{in: "3.50", want: 350},
		{in: "3.5", want: 350},
		{in: "3", want: 300},
		{in: "0.07", want: 7},
		{in: ".5", want: 50},
		{in: "10.", want: 1000},
		{in: "3.505", isErr: ErrPricePrecision},
		{in: "-1.00", isErr: ErrPriceNegative},
		{in: "", isErr: ErrPriceInvalid},
		{in: "soup", isErr: ErrPriceInvalid},
		{in: "92233720368547758.99", isErr: ErrPriceInvalid},
		{in: "99999999999999999999.00", isErr: ErrPriceInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePrice(tc.in)
			if tc.isErr != nil {
				require.ErrorIs(t, err, tc.isErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPriceJSON(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Price(350))
	require.NoError(t, err)
	require.Equal(t, `"3.50"`, string(out))

	var fromString Price
	require.NoError(t, json.Unmarshal([]byte(`"12.30"`), &fromString))
	require.Equal(t, Price(1230), fromString)

	var fromNumber Price
	require.NoError(t, json.Unmarshal([]byte(`3.5`), &fromNumber))
	require.Equal(t, Price(350), fromNumber)

	var tooPrecise Price
	require.ErrorIs(t, json.Unmarshal([]byte(`"1.999"`), &tooPrecise), ErrPricePrecision)
}

func TestPriceString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.00", Price(0).String())
	require.Equal(t, "0.05", Price(5).String())
	require.Equal(t, "123.40", Price(12340).String())
}
