package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ErrMissingParameter = errors.New("missing parameter")

// DBParamKeys are the names, relative to the prefix, that must all be present.
var DBParamKeys = []string{"host", "port", "user", "password", "database"}

// ParameterStore is the subset of the SSM client used to load the database parameters.
type ParameterStore interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

type DBParams struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func NewParameterStore(ctx context.Context, region string) (*ssm.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return ssm.NewFromConfig(cfg), nil
}

// FetchDBParams reads <prefix>/host, /port, /user, /password and /database with
// decryption enabled. Every key must come back non-empty.
func FetchDBParams(ctx context.Context, store ParameterStore, prefix string) (*DBParams, error) {
	prefix = strings.TrimSuffix(prefix, "/")

	names := make([]string, 0, len(DBParamKeys))
	for _, key := range DBParamKeys {
		names = append(names, prefix+"/"+key)
	}

	out, err := store.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          names,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not get parameters: %w", err)
	}

	if len(out.InvalidParameters) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(out.InvalidParameters, ", "))
	}

	values := make(map[string]string, len(out.Parameters))
	for _, p := range out.Parameters {
		name := aws.ToString(p.Name)
		key := name[strings.LastIndex(name, "/")+1:]
		values[key] = aws.ToString(p.Value)
	}

	return DBParamsFromMap(values)
}

// DBParamsFromMap builds DBParams from key/value pairs keyed by DBParamKeys.
func DBParamsFromMap(values map[string]string) (*DBParams, error) {
	var missing []string
	for _, key := range DBParamKeys {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(missing, ", "))
	}

	return &DBParams{
		Host:     values["host"],
		Port:     values["port"],
		User:     values["user"],
		Password: values["password"],
		Database: values["database"],
	}, nil
}
