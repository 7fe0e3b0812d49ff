package utils

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
)

func TestSetupConfigFileExplicit(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "provision.yaml")
	yaml := "generator:\n  repo-url: https://example.com/dbgen.git\n"
	if err := ioutil.WriteFile(cfg, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.String("generator.binary", "dbgen", "")

	v := viper.New()
	if err := SetupConfigFile(v, cfg, fs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.GetString("generator.repo-url"); got != "https://example.com/dbgen.git" {
		t.Errorf("incorrect repo-url from file: got %s", got)
	}
	if got := v.GetString("generator.binary"); got != "dbgen" {
		t.Errorf("incorrect binary from flag default: got %s", got)
	}
}

func TestSetupConfigFileMissing(t *testing.T) {
	v := viper.New()
	err := SetupConfigFile(v, filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err == nil {
		t.Errorf("unexpected lack of error for missing explicit config file")
	}
}
