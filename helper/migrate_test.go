package helper_test

import (
	"testing"

	"studio/config"
	"studio/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    helper.Action
		wantErr bool
	}{
		{raw: "up", want: helper.ActionUp},
		{raw: "down", want: helper.ActionDown},
		{raw: "step-up", want: helper.ActionStepUp},
		{raw: "drop", want: helper.ActionDrop},
		{raw: "version", want: helper.ActionVersion},
		{raw: "sideways", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := helper.ParseAction(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, helper.ErrUnknownAction)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "ci_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "studio"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Name = "studio"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://studio:p%40ss%2Fword@db:5432/ci_studio?sslmode=disable&x-migrations-table=schema_migrations",
		helper.DatabaseURL(cfg),
	)
}
