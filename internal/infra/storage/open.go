package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/braids-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/braids-scheduler/internal/db"
)

// Open builds the adapter selected by cfg.StorageDriver. The returned close
// func releases its connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case "memory":
		return NewMemory(), noop, nil

	case "file":
		f, err := NewFile(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case "postgres", "sqlite":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, noop, err
		}
		return NewGorm(db), func() error { return dbpkg.Close(db) }, nil

	case "redis":
		client, err := OpenRedis(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return NewRedis(client), client.Close, nil

	case "s3":
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
				o.UsePathStyle = true
			}
		})
		// record keys already carry STORAGE_PREFIX; S3_PREFIX is only a folder
		return NewS3(client, cfg.S3Bucket, cfg.S3Prefix), noop, nil

	case "dynamodb":
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
			}
		})
		return NewDynamo(client, cfg.DynamoTable), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	// Local emulators do not validate credentials, but the SDK requires them.
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
