package main

import (
	"context"

	"github.com/webblog/api/internal/common"
)

// loadDBParams resolves the database connection parameters from the configured source.
func loadDBParams(ctx context.Context, cfg *Config, store common.ParameterStore) (*common.DBParams, error) {
	if cfg.ParameterSource == parameterSourceEnv {
		return common.DBParamsFromMap(map[string]string{
			"host":     cfg.DB.Host,
			"port":     cfg.DB.Port,
			"user":     cfg.DB.User,
			"password": cfg.DB.Password,
			"database": cfg.DB.Name,
		})
	}

	if store == nil {
		s, err := common.NewParameterStore(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		store = s
	}

	return common.FetchDBParams(ctx, store, cfg.ParameterPrefix)
}
