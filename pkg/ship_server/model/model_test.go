package model_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	var fromNumber, fromString model.Decimal
	require.NoError(t, json.Unmarshal([]byte(`12.50`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &fromString))

	assert.Equal(t, "12.5", fromNumber.String())
	assert.Equal(t, fromNumber.String(), fromString.String())
	assert.Equal(t, 12.5, fromString.InexactFloat64())

	out, err := json.Marshal(struct {
		Weight model.Decimal `json:"weight"`
	}{Weight: fromString})
	require.NoError(t, err)
	assert.Equal(t, `{"weight":12.5}`, string(out))

	_, err = model.NewDecimalFromString("heavy")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d, err := model.NewDateFromString("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(out))

	var back model.Date
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back)

	var empty model.Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())

	_, err = model.NewDateFromString("03/01/2024")
	assert.Error(t, err)
}

func TestDateIn(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 03:30 UTC on March 2nd is still March 1st in Chicago.
	ts := time.Date(2024, 3, 2, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", model.DateIn(ts, chicago).String())
	assert.Equal(t, "2024-03-02", model.DateIn(ts, time.UTC).String())
}

func TestErrToHttpStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, model.ErrToHttpStatus(model.ErrDuplicateCarton))
	assert.Equal(t, http.StatusBadRequest, model.ErrToHttpStatus(fmt.Errorf("service: cannot be blank%w", model.ErrInvalidParameter)))
	assert.Equal(t, http.StatusNotFound, model.ErrToHttpStatus(model.ErrShipmentNotFound))
	assert.Equal(t, http.StatusNotFound, model.ErrToHttpStatus(model.ErrLabelNotCreated))
	assert.Equal(t, http.StatusPreconditionFailed, model.ErrToHttpStatus(model.ErrSettingsNotFound))
	assert.Equal(t, http.StatusInternalServerError, model.ErrToHttpStatus(errors.New("boom")))
	assert.Equal(t, "duplicate cartons scanned", model.ErrDuplicateCarton.Error())
}
