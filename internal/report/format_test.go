package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0 €"},
		{"12", "12 €"},
		{"1234", "1 234 €"},
		{"1234567.4", "1 234 567 €"},
		{"-1500", "-1 500 €"},
		{"999.6", "1 000 €"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in)), "Money(%s)", tt.in)
	}
}

func TestMoneyOrBlank(t *testing.T) {
	assert.Equal(t, "", MoneyOrBlank(nil))
	assert.Equal(t, "530 €", MoneyOrBlank(dec("530")))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "", Percent(nil))
	assert.Equal(t, "12,3 %", Percent(dec("12.3")))
	assert.Equal(t, "-50,0 %", Percent(dec("-50")))
	assert.Equal(t, "833,3 %", Percent(dec("833.33")))
}
