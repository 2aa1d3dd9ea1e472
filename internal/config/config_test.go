package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "Missing Port",
			cfg:     Config{JWTSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "Missing JWT Secret",
			cfg:     Config{Port: "8460"},
			wantErr: true,
		},
		{
			name:    "Development Defaults OK",
			cfg:     Config{Port: "8460", JWTSecret: "your-secret-key-change-in-production", Env: "development"},
			wantErr: false,
		},
		{
			name:    "Production Rejects Default Secret",
			cfg:     Config{Port: "8460", JWTSecret: "your-secret-key-change-in-production", Env: "production", DBPassword: "s3cure-db-pass"},
			wantErr: true,
		},
		{
			name:    "Production Rejects Short Secret",
			cfg:     Config{Port: "8460", JWTSecret: "short", Env: "production", DBPassword: "s3cure-db-pass"},
			wantErr: true,
		},
		{
			name:    "Production Rejects Default DB Password",
			cfg:     Config{Port: "8460", JWTSecret: "a-long-enough-production-secret-value", Env: "production", DBPassword: "password"},
			wantErr: true,
		},
		{
			name: "Production OK",
			cfg: Config{
				Port:       "8460",
				JWTSecret:  "a-long-enough-production-secret-value",
				Env:        "production",
				DBPassword: "s3cure-db-pass",
				DBSSLMode:  "require",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
