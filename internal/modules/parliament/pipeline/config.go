package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/steps"
)

const agendaFileName = "AgendaParlamentar_json.txt"

// Config names the export files of each stage. Empty lists are derived from
// Legislatures using the portal's file naming.
type Config struct {
	Legislatures []string             `yaml:"legislatures"`
	Orgaos       []steps.SourceFile   `yaml:"orgaos"`
	Deputados    []steps.SourceFile   `yaml:"deputados"`
	Biografias   []steps.SourceFile   `yaml:"biografias"`
	Iniciativas  []steps.SourceFile   `yaml:"iniciativas"`
	Agenda       []steps.SourceFile   `yaml:"agenda"`
	Linker       linkage.LinkerConfig `yaml:"linking"`
}

func DefaultConfig() Config {
	return Config{Legislatures: []string{"XVII"}, Linker: linkage.DefaultLinkerConfig()}.WithDefaults()
}

// WithDefaults fills every empty file list and linking constant.
func (c Config) WithDefaults() Config {
	if len(c.Legislatures) == 0 {
		c.Legislatures = []string{"XVII"}
	}
	perLeg := func(pattern string) []steps.SourceFile {
		out := make([]steps.SourceFile, 0, len(c.Legislatures))
		for _, leg := range c.Legislatures {
			leg = strings.TrimSpace(leg)
			if leg == "" {
				continue
			}
			out = append(out, steps.SourceFile{Legislature: leg, Name: fmt.Sprintf(pattern, leg)})
		}
		return out
	}
	if len(c.Orgaos) == 0 {
		c.Orgaos = perLeg("OrgaoComposicao%s_json.txt")
	}
	if len(c.Deputados) == 0 {
		c.Deputados = perLeg("InformacaoBase%s_json.txt")
	}
	if len(c.Biografias) == 0 {
		c.Biografias = perLeg("RegistoBiografico%s_json.txt")
	}
	if len(c.Iniciativas) == 0 {
		c.Iniciativas = perLeg("Iniciativas%s_json.txt")
	}
	if len(c.Agenda) == 0 {
		c.Agenda = []steps.SourceFile{{Legislature: c.Legislatures[len(c.Legislatures)-1], Name: agendaFileName}}
	}
	c.Linker = c.Linker.Normalized()
	return c
}

// LoadConfigFile reads a YAML pipeline file. An empty path yields the defaults.
func LoadConfigFile(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read pipeline config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse pipeline config %s: %w", path, err)
	}
	if c.Linker.MinConfidence > 0 && c.Linker.MaxConfidence > 0 && c.Linker.MinConfidence > c.Linker.MaxConfidence {
		return Config{}, fmt.Errorf("parse pipeline config %s: confidence_min %.2f above confidence_max %.2f",
			path, c.Linker.MinConfidence, c.Linker.MaxConfidence)
	}
	return c.WithDefaults(), nil
}
