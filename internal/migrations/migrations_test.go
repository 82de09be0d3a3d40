package migrations

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	source, err := iofs.New(files, "sql")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, _, err := source.ReadUp(version)
	require.NoError(t, err)
	upSQL, err := io.ReadAll(up)
	require.NoError(t, err)
	_ = up.Close()

	down, _, err := source.ReadDown(version)
	require.NoError(t, err)
	downSQL, err := io.ReadAll(down)
	require.NoError(t, err)
	_ = down.Close()

	for _, table := range []string{"users", "boards", "board_users", "lists", "cards", "card_users"} {
		assert.Contains(t, string(upSQL), "CREATE TABLE IF NOT EXISTS "+table+" (")
		assert.Contains(t, string(downSQL), "DROP TABLE IF EXISTS "+table+";")
	}
	assert.Contains(t, string(upSQL), "board_users_board_id_user_id_key")
	assert.Contains(t, string(upSQL), "card_users_card_id_user_id_key")
}
