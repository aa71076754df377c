package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterGetter is the subset of *ssm.Client used to read secrets
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets overlays values stored in SSM Parameter Store onto cfg.
// It is a no-op when no parameter names are configured.
func ResolveSecrets(ctx context.Context, cfg *Config, client ParameterGetter) error {
	if cfg.DatabaseURLSSMParameter == "" {
		return nil
	}
	if client == nil {
		return fmt.Errorf("config: DATABASE_URL_SSM_PARAMETER set but no SSM client available")
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.DatabaseURLSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("config: reading %s from SSM: %w", cfg.DatabaseURLSSMParameter, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return fmt.Errorf("config: SSM parameter %s is empty", cfg.DatabaseURLSSMParameter)
	}

	cfg.DatabaseURL = aws.ToString(out.Parameter.Value)
	// The full URL replaces the supabase parts
	if cfg.DBType == "supa" {
		cfg.DBType = "postgres"
	}
	log.Info().Str("parameter", cfg.DatabaseURLSSMParameter).Msg("Database URL loaded from SSM")
	return nil
}

// NeedsAWS reports whether any configured feature talks to AWS
func (c *Config) NeedsAWS() bool {
	return c.DatabaseURLSSMParameter != "" || (c.Storage.Bucket != "" && c.Storage.PublicURL == "")
}
