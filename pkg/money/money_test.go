package money_test

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/optica-api/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    money.Cents
		wantErr bool
	}{
		{in: "250", want: 25000},
		{in: "250.5", want: 25050},
		{in: "0.01", want: 1},
		{in: " 1025.00 ", want: 102500},
		{in: "-3.10", want: -310},
		{in: "1.005", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1000000000000.00", want: money.Max},
		{in: "-1000000000000", want: -money.Max},
		{in: "1000000000000.01", wantErr: true},
		{in: "100000000000000000000", wantErr: true},
		{in: "92233720368547758.08", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Amount money.Cents `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: 102550})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":1025.50}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"19.90"}`), &in))
	assert.Equal(t, money.Cents(1990), in.Amount)

	require.NoError(t, json.Unmarshal(out, &in))
	assert.Equal(t, money.Cents(102550), in.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":0.001}`), &in))
}

func TestSplitKeepsTotal(t *testing.T) {
	t.Parallel()

	parts := money.Cents(102500).Split(3)
	require.Len(t, parts, 3)
	assert.Equal(t, []money.Cents{34166, 34166, 34168}, parts)

	var sum money.Cents
	for _, p := range parts {
		sum += p
	}
	assert.Equal(t, money.Cents(102500), sum)
	assert.Nil(t, money.Cents(100).Split(0))
}

func TestPercentAndBRL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, money.Cents(2000), money.FromUnits(1000).Percent(decimal.RequireFromString("0.02")))
	assert.Equal(t, money.Cents(1), money.Cents(25).Percent(decimal.RequireFromString("0.02")))
	assert.Equal(t, "R$ 1.025,00", money.Cents(102500).BRL())
	assert.Equal(t, "R$ 0,05", money.Cents(5).BRL())
	assert.Equal(t, "-R$ 12,30", money.Cents(-1230).BRL())
}

func TestParseNeverWraps(t *testing.T) {
	t.Parallel()

	_, err := money.Parse("100000000000000000000")
	assert.ErrorIs(t, err, money.ErrOutOfRange)

	var in struct {
		Amount money.Cents `json:"amount"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"amount":92233720368547758.08}`), &in))
	assert.Equal(t, money.Zero, in.Amount)
}

func TestCheckedArithmetic(t *testing.T) {
	t.Parallel()

	got, err := money.FromUnits(100).MulChecked(3)
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(300), got)

	got, err = money.Cents(-250).MulChecked(-2)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(500), got)

	got, err = money.Max.MulChecked(1)
	require.NoError(t, err)
	assert.Equal(t, money.Max, got)

	for _, qty := range []int{int(money.Max), 1 << 62, -(1 << 62)} {
		_, err = money.FromUnits(100).MulChecked(qty)
		assert.ErrorIs(t, err, money.ErrOutOfRange, qty)
	}
	_, err = money.Cents(1<<62).MulChecked(1)
	assert.ErrorIs(t, err, money.ErrOutOfRange)

	sum, err := money.Max.AddChecked(-money.Max)
	require.NoError(t, err)
	assert.Equal(t, money.Zero, sum)

	_, err = money.Max.AddChecked(1)
	assert.ErrorIs(t, err, money.ErrOutOfRange)
}
