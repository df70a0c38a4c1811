package config

import (
	"os"
	"testing"
)

// 配置文件缺失时 GetConfig 仍返回可用的零值配置，不 panic
func TestGetConfigFallsBackToDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(wd)
		config = nil
	}()
	config = nil

	conf := GetConfig()
	if conf == nil {
		t.Fatal("GetConfig returned nil")
	}
	if conf.MainConfig.Port != 0 {
		t.Errorf("port = %d, want zero default", conf.MainConfig.Port)
	}

	// 单例：再次调用拿到同一实例
	if GetConfig() != conf {
		t.Error("GetConfig not a singleton")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(wd)
		config = nil
	}()
	config = new(Config)

	if err := LoadConfig(); err == nil {
		t.Error("expected error when no config file exists")
	}
}
