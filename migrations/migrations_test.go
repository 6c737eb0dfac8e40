package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Ordered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	assert.Equal(t, []string{"0001_init.sql", "0002_payment_status_enum.sql"}, names)
}

func TestStatusMigration_RewritesLegacyUnpaid(t *testing.T) {
	body, err := files.ReadFile("0002_payment_status_enum.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "SET status = 'pending' WHERE status = 'unpaid'")
}
