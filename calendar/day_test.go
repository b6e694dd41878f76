package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryConstructors(t *testing.T) {
	f := NewFactory[plain](time.Local, fixedNow, nil)

	tests := []struct {
		name string
		day  func() (*Day[plain], error)
		want string
	}{
		{"time with clock", func() (*Day[plain], error) {
			return f.FromTime(time.Date(2022, 3, 15, 23, 59, 0, 0, time.Local)), nil
		}, "2022-03-15"},
		{"components", func() (*Day[plain], error) { return f.FromDate(2022, time.March, 15), nil }, "2022-03-15"},
		{"components overflow", func() (*Day[plain], error) { return f.FromDate(2022, time.February, 30), nil }, "2022-03-02"},
		{"unix millis", func() (*Day[plain], error) {
			return f.FromUnixMilli(time.Date(2022, 3, 15, 13, 0, 0, 0, time.Local).UnixMilli()), nil
		}, "2022-03-15"},
		{"iso string", func() (*Day[plain], error) { return f.FromString("2022-03-15") }, "2022-03-15"},
		{"long string", func() (*Day[plain], error) { return f.FromString("March 15, 2022") }, "2022-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.day()
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.ID)
			h, m, s := d.Date.Clock()
			assert.Zero(t, h+m+s)
			assert.False(t, d.Copied)
			assert.False(t, d.OtherPeriod)
		})
	}
}

func TestFactoryFromStringInvalid(t *testing.T) {
	f := NewFactory[plain](time.Local, fixedNow, nil)

	_, err := f.FromString("not a date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayDerivedFields(t *testing.T) {
	f := NewFactory[plain](time.Local, fixedNow, nil)

	today := f.FromDate(2022, time.March, 8)
	assert.True(t, today.IsToday)
	assert.False(t, today.IsWeekend)
	assert.Equal(t, 2022*12+2, today.MonthYearIndex)

	saturday := f.FromDate(2022, time.March, 12)
	sunday := f.FromDate(2022, time.March, 13)
	assert.False(t, saturday.IsToday)
	assert.True(t, saturday.IsWeekend)
	assert.True(t, sunday.IsWeekend)

	for _, cell := range []bool{today.Disabled.Get(), today.Selected.Get(), today.Between.Get(), today.Hovered.Get()} {
		assert.False(t, cell)
	}
}

func TestDayCopySharesFlags(t *testing.T) {
	f := NewFactory[plain](time.Local, fixedNow, nil)
	day := f.FromDate(2022, time.March, 31)

	shadow := day.Copy()
	require.NotSame(t, day, shadow)
	assert.True(t, shadow.Copied)
	assert.False(t, day.Copied)
	assert.True(t, shadow.SharesFlags(day))

	shadow.OtherPeriod = true
	assert.False(t, day.OtherPeriod)

	shadow.Selected.Set(true)
	assert.True(t, day.Selected.Get())
	day.Hovered.Set(true)
	assert.True(t, shadow.Hovered.Get())
}

func TestFactoryExtend(t *testing.T) {
	type extra struct {
		Label string
		Price int
	}
	f := NewFactory(time.Local, fixedNow, func(d *Day[extra]) extra {
		price := 100
		if d.IsWeekend {
			price = 150
		}
		return extra{Label: "day " + d.ID, Price: price}
	})

	d := f.FromDate(2022, time.March, 12)
	assert.Equal(t, "day 2022-03-12", d.Ext.Label)
	assert.Equal(t, 150, d.Ext.Price)
	assert.Equal(t, d.Ext, d.Copy().Ext)
}
