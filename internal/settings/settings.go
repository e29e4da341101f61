package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	ListenAddr string `yaml:"listen_addr"`

	CatalogDir string `yaml:"catalog_dir"`
	SavePath   string `yaml:"save_path"`
	AuditDir   string `yaml:"audit_dir"`

	LegacyImport bool  `yaml:"legacy_import"`
	RandomSeed   int64 `yaml:"random_seed"`
}

func Defaults() Settings {
	return Settings{
		ListenAddr:   ":8790",
		CatalogDir:   "catalog",
		SavePath:     "data/savedata.db",
		AuditDir:     "data/audit",
		LegacyImport: true,
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults apply.
func Load(path string) (Settings, error) {
	s := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("settings.yaml: %w", err)
	}
	return s, nil
}
