package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

func TestYearAtBoundaries(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, YearAt(1908, now))
	assert.NoError(t, YearAt(2027, now))
	assert.NoError(t, YearAt(1988, now))

	assert.Error(t, YearAt(1907, now))
	assert.Error(t, YearAt(2028, now))
}

func TestYearAtCarriesRange(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	err := YearAt(1907, now)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]int{"min": 1908, "max": 2027}, typed.Details())
}

func TestYearUsesCurrentClock(t *testing.T) {
	next := time.Now().Year() + YearsOut
	assert.NoError(t, Year(next))
	assert.Error(t, Year(next+1))
}

func TestNonNegative(t *testing.T) {
	assert.NoError(t, NonNegative("mileage", 0))
	assert.NoError(t, NonNegative("mileage", 100005))

	err := NonNegative("list_price_cents", -1)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestStruct(t *testing.T) {
	type input struct {
		Year    int   `validate:"caryear"`
		Mileage int64 `validate:"gte=0"`
	}

	assert.NoError(t, Struct(input{Year: 2007, Mileage: 100005}))

	err := Struct(input{Year: 1800, Mileage: -5})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().([]string)
	require.True(t, ok)
	assert.Len(t, details, 2)
}
