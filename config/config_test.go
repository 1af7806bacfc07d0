package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worklog.yaml")
	data := []byte(`
endpoint: https://crm.example.com/api
pageSize: 50
timeFormat: hm
allowOverlap: true
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("os.WriteFile: %s", err.Error())
	}

	conf, err := Load(path)
	if err != nil {
		t.Errorf("Load: %s", err.Error())
		return
	}
	if conf.Endpoint != "https://crm.example.com/api" || conf.PageSize != 50 {
		t.Errorf("unexpected config: %#v", conf)
	}
	if !conf.AllowOverlap {
		t.Errorf("expected allowOverlap to be set")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing explicit config, got none")
	}
}
