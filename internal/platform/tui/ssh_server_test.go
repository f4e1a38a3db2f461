package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		cfg  SSHServerConfig
		want string
	}{
		{
			name: "default under home",
			cfg:  SSHServerConfig{},
			want: filepath.Join(home, ".tilt", "host_key"),
		},
		{
			name: "explicit path",
			cfg:  SSHServerConfig{HostKeyPath: filepath.Join(home, "keys", "nested", "id")},
			want: filepath.Join(home, "keys", "nested", "id"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.hostKey()
			if err != nil {
				t.Fatalf("hostKey() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("hostKey() = %q, want %q", got, tt.want)
			}
			if info, err := os.Stat(filepath.Dir(got)); err != nil || !info.IsDir() {
				t.Errorf("key directory not created: %v", err)
			}
		})
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), cfg.Address)
	}
}
