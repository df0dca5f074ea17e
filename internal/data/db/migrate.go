package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/viriato-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes adds the lookup indexes gorm tags cannot express portably.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_iniciativa_comissao_orgao_link", `CREATE INDEX IF NOT EXISTS idx_iniciativa_comissao_orgao_link ON iniciativa_comissao(orgao_id, link_type);`},
		{"idx_agenda_event_committee_date", `CREATE INDEX IF NOT EXISTS idx_agenda_event_committee_date ON agenda_events(committee, start_date);`},
		{"idx_deputado_seat", `CREATE INDEX IF NOT EXISTS idx_deputado_seat ON deputados(legislature, circulo, party);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
