package domain_test

import (
	"strings"
	"testing"

	"dochub/internal/modules/connector/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:    "localdir",
		Version: "1.0.0",
		Binary:  "/opt/dochub/connectors/localdir",
		SHA256:  strings.Repeat("ab", 32),
		Enabled: true,
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	cases := map[string]func(*domain.Manifest){
		"missing name":     func(m *domain.Manifest) { m.Name = "" },
		"missing version":  func(m *domain.Manifest) { m.Version = "" },
		"missing binary":   func(m *domain.Manifest) { m.Binary = "" },
		"short sha256":     func(m *domain.Manifest) { m.SHA256 = "abcd" },
		"uppercase sha256": func(m *domain.Manifest) { m.SHA256 = strings.Repeat("AB", 32) },
	}
	for name, mutate := range cases {
		m := validManifest()
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
