package steps

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type LoadOrgaosDeps struct {
	DB      *gorm.DB
	Log     *logger.Logger
	Source  source.BlobSource
	Orgaos  repos.OrgaoRepo
	Membros repos.OrgaoMembroRepo
}

type LoadOrgaosInput struct {
	Files []SourceFile
	Tally *linkage.Tally
}

type LoadOrgaosOutput struct {
	FilesRead   int      `json:"files_read"`
	FilesFailed []string `json:"files_failed,omitempty"`
	Orgaos      int      `json:"orgaos"`
	Members     int      `json:"members"`
}

type orgaoWork struct {
	row     *parliament.Orgao
	members []source.MembroOrgao
}

// LoadOrgaos upserts every body of the composition files and its membership history.
func LoadOrgaos(ctx context.Context, deps LoadOrgaosDeps, in LoadOrgaosInput) (LoadOrgaosOutput, error) {
	out := LoadOrgaosOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Orgaos == nil || deps.Membros == nil {
		return out, fmt.Errorf("load_orgaos: missing deps")
	}
	log := deps.Log.With("step", "load_orgaos")
	tally := in.Tally

	decoded := decodeFiles(ctx, deps.Source, in.Files, source.DecodeOrgaoComposicao)
	var work []orgaoWork
	for _, d := range decoded {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Error("Orgao file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for _, sec := range d.Value.Sections() {
			for _, item := range sec.Items {
				row, ok := buildOrgao(sec.OrgType, item, d.File.Legislature, tally)
				if !ok {
					continue
				}
				work = append(work, orgaoWork{row: row, members: item.Historico})
			}
		}
	}

	err := forEachBatch(ctx, deps.DB, len(work), defaultBatchSize, func(tx *gorm.DB, i int) {
		w := work[i]
		var orgaoID uint
		if !writeRow(ctx, tx, tally, log, "orgaos", func(dbc dbctx.Context) error {
			saved, err := deps.Orgaos.Upsert(dbc, w.row)
			if err != nil {
				return err
			}
			orgaoID = saved.ID
			return nil
		}) {
			return
		}
		out.Orgaos++
		tally.Written("orgaos", 1)

		for _, m := range w.members {
			row, ok := buildMembro(orgaoID, m, tally)
			if !ok {
				continue
			}
			if writeRow(ctx, tx, tally, log, "orgao_membros", func(dbc dbctx.Context) error {
				return deps.Membros.Upsert(dbc, row)
			}) {
				out.Members++
				tally.Written("orgao_membros", 1)
			}
		}
	})
	if err != nil {
		return out, fmt.Errorf("load_orgaos: %w", err)
	}
	log.Info("Orgaos loaded", "files", out.FilesRead, "orgaos", out.Orgaos, "members", out.Members)
	return out, nil
}

func buildOrgao(orgType string, item source.OrgaoItem, legislature string, tally *linkage.Tally) (*parliament.Orgao, bool) {
	d := item.Detalhe
	if d == nil || d.IDOrgao == 0 {
		tally.Malformed("orgao_missing_id", 1)
		return nil, false
	}
	name := strings.TrimSpace(string(d.NomeSigla))
	if name == "" {
		tally.Malformed("orgao_missing_name", 1)
		return nil, false
	}
	return &parliament.Orgao{
		OrgID:       int64(d.IDOrgao),
		Legislature: legislatureOr(d.SiglaLegislatura, legislature),
		Name:        string(d.NomeSigla),
		Acronym:     string(d.SiglaOrgao),
		OrgType:     orgType,
		Number:      optInt(d.NumeroOrgao),
		RawData:     rawJSON(d.Raw),
	}, true
}

func buildMembro(orgaoID uint, m source.MembroOrgao, tally *linkage.Tally) (*parliament.OrgaoMembro, bool) {
	if m.DepID == 0 {
		tally.Malformed("orgao_member_missing_dep_id", 1)
		return nil, false
	}
	row := &parliament.OrgaoMembro{
		OrgaoID:    orgaoID,
		DepID:      int64(m.DepID),
		DepCadID:   int64(m.DepCadID),
		DeputyName: string(m.DepNomeParlamentar),
		Party:      m.CurrentParty(),
		Role:       optString(string(m.DepCargo)),
		RawData:    rawJSON(m.Raw),
	}
	if sit, ok := m.CurrentSituation(); ok {
		row.MemberType = string(sit.SioTipMem)
		row.StartDate = source.ParseISODate(string(sit.SioDtInicio))
		row.EndDate = source.ParseISODate(string(sit.SioDtFim))
	}
	return row, true
}
