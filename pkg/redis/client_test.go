package redis

import (
	"testing"
	"time"

	"github.com/rkartside/quoter-backend/pkg/config"
)

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:s3cret@cache.internal:6380/2"})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "cache.internal:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.Password != "s3cret" {
		t.Fatalf("unexpected password %q", opts.Password)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "localhost:6379",
		Password:    "pw",
		DB:          1,
		PoolSize:    10,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.Password != "pw" || opts.DB != 1 {
		t.Fatalf("credentials not carried over: %+v", opts)
	}
	if opts.PoolSize != 10 || opts.DialTimeout != 5*time.Second {
		t.Fatalf("tuning not carried over: %+v", opts)
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}
