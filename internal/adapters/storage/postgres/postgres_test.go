package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migs, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, 1, migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS dose_events")

	for i := 1; i < len(migs); i++ {
		assert.Less(t, migs[i-1].Version, migs[i].Version)
	}
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil))

	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "dose_events_slot_key"})
	err := mapWriteError(dup)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "dose_events_slot_key")

	other := errors.New("connection refused")
	assert.Equal(t, other, mapWriteError(other))
}

func TestTimesColumn(t *testing.T) {
	assert.Equal(t, "08:00,20:00", joinTimes([]string{"08:00", "20:00"}))
	assert.Equal(t, []string{"08:00", "20:00"}, splitTimes("08:00,20:00"))
	assert.Equal(t, []string{}, splitTimes(""))
}

func TestDateColumns(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)

	d, err := parseOptionalDateCol(sql.NullString{String: "2024-03-01", Valid: true}, loc)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2024-03-01", dateArg(*d))
	assert.Equal(t, loc, d.Location())

	none, err := parseOptionalDateCol(sql.NullString{}, loc)
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Nil(t, optionalDateArg(nil))
}

func TestGetByIDLocksRowInsideTransaction(t *testing.T) {
	plain := NewMedicationsRepo(nil, time.UTC)
	assert.NotContains(t, plain.getByIDQuery(), "FOR UPDATE")

	locked := NewMedicationsRepo(nil, time.UTC)
	locked.forUpdate = true
	assert.True(t, strings.HasSuffix(locked.getByIDQuery(), " FOR UPDATE"))
}
