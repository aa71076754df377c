package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "supa", cfg.DBType)
	assert.Equal(t, 180*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "/images/placeholder.jpg", cfg.PlaceholderImageURL)
	assert.Equal(t, time.Hour, cfg.PresignTTL())
	assert.Empty(t, cfg.AcceptedOrigins)
}

func TestLoadFrom_ParsesLists(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"ACCEPTED_ORIGINS":      "http://localhost:3000,https://example.com",
		"DATABASE_REPLICA_URLS": "postgres://r1,postgres://r2",
		"GENERATE_MODELS":       "true",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.AcceptedOrigins)
	assert.Equal(t, []string{"postgres://r1", "postgres://r2"}, cfg.DatabaseReplicaURLs)
	assert.True(t, cfg.GenerateModels)
	assert.False(t, cfg.GenerateColumnReport)
}

func TestLoadFrom_RejectsUnknownValues(t *testing.T) {
	_, err := LoadFrom(map[string]string{"ENVIRONMENT": "staging"})
	assert.Error(t, err)

	_, err = LoadFrom(map[string]string{"DB_TYPE": "mysql"})
	assert.Error(t, err)

	_, err = LoadFrom(map[string]string{"READ_TIMEOUT": "soon"})
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SUPABASE_DB_HOST":     "db.example.com",
		"SUPABASE_DB_USER":     "postgres",
		"SUPABASE_DB_PASSWORD": "pw",
		"SUPABASE_DB_NAME":     "cms",
	})
	require.NoError(t, err)
	assert.Equal(t, "host=db.example.com user=postgres password=pw dbname=cms port=5432 sslmode=require", cfg.DSN())

	cfg, err = LoadFrom(map[string]string{"DB_TYPE": "sqlite", "SQLITE_PATH": "/tmp/cms.db"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cms.db", cfg.DSN())

	cfg, err = LoadFrom(map[string]string{"DB_TYPE": "postgres", "DATABASE_URL": "postgres://localhost/cms"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cms", cfg.DSN())
}

func TestAPIBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		serverSide bool
		want       string
	}{
		{"browser_development", map[string]string{}, false, ""},
		{"browser_production", map[string]string{"ENVIRONMENT": "production", "PUBLIC_API_URL": "https://api.example.com"}, false, ""},
		{"server_development", map[string]string{"LOCAL_API_URL": "http://localhost:9000/"}, true, "http://localhost:9000"},
		{"server_production", map[string]string{"ENVIRONMENT": "production", "PUBLIC_API_URL": "https://api.example.com/"}, true, "https://api.example.com"},
		{"server_production_without_public_url", map[string]string{"ENVIRONMENT": "production"}, true, "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIBaseURL(tt.serverSide))
		})
	}
}

type fakeSSM struct {
	value string
	err   error
	input *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestResolveSecrets(t *testing.T) {
	t.Run("no_parameter_configured", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{})
		require.NoError(t, err)
		require.NoError(t, ResolveSecrets(context.Background(), cfg, nil))
		assert.Equal(t, "supa", cfg.DBType)
	})

	t.Run("reads_decrypted_url", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{"DATABASE_URL_SSM_PARAMETER": "/cms/database-url"})
		require.NoError(t, err)
		client := &fakeSSM{value: "postgres://secret/cms"}

		require.NoError(t, ResolveSecrets(context.Background(), cfg, client))

		assert.Equal(t, "postgres://secret/cms", cfg.DatabaseURL)
		assert.Equal(t, "postgres", cfg.DBType)
		assert.Equal(t, "/cms/database-url", aws.ToString(client.input.Name))
		assert.True(t, aws.ToBool(client.input.WithDecryption))
	})

	t.Run("ssm_failure", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{"DATABASE_URL_SSM_PARAMETER": "/cms/database-url"})
		require.NoError(t, err)
		assert.Error(t, ResolveSecrets(context.Background(), cfg, &fakeSSM{err: errors.New("access denied")}))
	})

	t.Run("empty_value", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{"DATABASE_URL_SSM_PARAMETER": "/cms/database-url"})
		require.NoError(t, err)
		assert.Error(t, ResolveSecrets(context.Background(), cfg, &fakeSSM{}))
	})
}
