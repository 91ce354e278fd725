package config

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v2"
)

// Validator is implemented by config structs that can check themselves after loading.
type Validator interface {
	Validate() error
}

// FromFile reads the YAML config at filePath into cfg.
//
// The file is rendered as a text/template with the process environment as data
// ({{ .FEDEX_CLIENT_ID }}), then $VAR references are expanded, then it is unmarshaled.
// If cfg implements Validator the result is validated before returning.
func FromFile(filePath string, cfg interface{}) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return FromBytes(filePath, raw, cfg)
}

// FromBytes is FromFile for content that is already in memory. name is only used in error messages.
func FromBytes(name string, raw []byte, cfg interface{}) error {
	t, err := template.New(name).Option("missingkey=zero").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse config template %q: %w", name, err)
	}

	strWriter := &strings.Builder{}
	if err := t.Execute(strWriter, environ()); err != nil {
		return fmt.Errorf("render config template %q: %w", name, err)
	}

	content := os.ExpandEnv(strWriter.String())
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return fmt.Errorf("unmarshal config %q: %w", name, err)
	}

	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid config %q: %w", name, err)
		}
	}
	return nil
}

func environ() map[string]string {
	envMap := make(map[string]string)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 {
			continue
		}
		envMap[pair[0]] = pair[1]
	}
	return envMap
}
