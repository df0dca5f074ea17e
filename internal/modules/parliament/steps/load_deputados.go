package steps

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type LoadDeputadosDeps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Source    source.BlobSource
	Deputados repos.DeputadoRepo
}

type LoadDeputadosInput struct {
	Files    []SourceFile
	BioFiles []SourceFile
	Tally    *linkage.Tally
}

type LoadDeputadosOutput struct {
	FilesRead   int      `json:"files_read"`
	FilesFailed []string `json:"files_failed,omitempty"`
	Deputados   int      `json:"deputados"`
	Bios        int      `json:"bios"`
}

// LoadDeputados upserts the deputy mandates of each legislature and, when
// biography files are configured, the biographical records.
func LoadDeputados(ctx context.Context, deps LoadDeputadosDeps, in LoadDeputadosInput) (LoadDeputadosOutput, error) {
	out := LoadDeputadosOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Deputados == nil {
		return out, fmt.Errorf("load_deputados: missing deps")
	}
	log := deps.Log.With("step", "load_deputados")
	tally := in.Tally

	var rows []*parliament.Deputado
	for _, d := range decodeFiles(ctx, deps.Source, in.Files, source.DecodeInformacaoBase) {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Error("Deputy file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for _, dep := range d.Value.Deputados {
			if row, ok := buildDeputado(dep, d.File.Legislature, tally); ok {
				rows = append(rows, row)
			}
		}
	}
	err := forEachBatch(ctx, deps.DB, len(rows), defaultBatchSize, func(tx *gorm.DB, i int) {
		if writeRow(ctx, tx, tally, log, "deputados", func(dbc dbctx.Context) error {
			return deps.Deputados.Upsert(dbc, rows[i])
		}) {
			out.Deputados++
			tally.Written("deputados", 1)
		}
	})
	if err != nil {
		return out, fmt.Errorf("load_deputados: %w", err)
	}

	decodeBios := func(r io.Reader) ([]source.RegistoBiografico, error) {
		bios, stats, err := source.DecodeBiografias(r)
		tally.Malformed("deputado_bio_record", stats.Malformed)
		return bios, err
	}
	var bios []*parliament.DeputadoBio
	for _, d := range decodeFiles(ctx, deps.Source, in.BioFiles, decodeBios) {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Warn("Biography file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for _, b := range d.Value {
			if b.CadID == 0 {
				tally.Malformed("deputado_bio_missing_cad_id", 1)
				continue
			}
			bios = append(bios, buildBio(b))
		}
	}
	err = forEachBatch(ctx, deps.DB, len(bios), defaultBatchSize, func(tx *gorm.DB, i int) {
		if writeRow(ctx, tx, tally, log, "deputados_bio", func(dbc dbctx.Context) error {
			return deps.Deputados.UpsertBio(dbc, bios[i])
		}) {
			out.Bios++
			tally.Written("deputados_bio", 1)
		}
	})
	if err != nil {
		return out, fmt.Errorf("load_deputados: bios: %w", err)
	}
	log.Info("Deputies loaded", "deputados", out.Deputados, "bios", out.Bios)
	return out, nil
}

func buildDeputado(d source.Deputado, legislature string, tally *linkage.Tally) (*parliament.Deputado, bool) {
	if d.DepID == 0 {
		tally.Malformed("deputado_missing_dep_id", 1)
		return nil, false
	}
	row := &parliament.Deputado{
		DepID:       int64(d.DepID),
		DepCadID:    int64(d.DepCadID),
		Legislature: legislatureOr(d.LegDes, legislature),
		Name:        string(d.DepNomeParlamentar),
		FullName:    string(d.DepNomeCompleto),
		Party:       d.CurrentParty(),
		Circulo:     string(d.DepCPDes),
		RawData:     rawJSON(d.Raw),
	}
	if d.DepCPID != 0 {
		id := int64(d.DepCPID)
		row.CirculoID = &id
	}
	if sit, ok := d.CurrentSituation(); ok {
		row.Situation = string(sit.SioDes)
		row.SituationStart = source.ParseISODate(string(sit.SioDtInicio))
		row.SituationEnd = source.ParseISODate(string(sit.SioDtFim))
	}
	return row, true
}

func buildBio(b source.RegistoBiografico) *parliament.DeputadoBio {
	return &parliament.DeputadoBio{
		CadID:          int64(b.CadID),
		FullName:       string(b.CadNomeCompleto),
		Gender:         string(b.CadSexo),
		BirthDate:      source.ParseISODate(string(b.CadDtNascimento)),
		Profession:     source.JoinTexts(b.CadProfissao),
		Education:      source.JoinTexts(b.CadHabilitacoes),
		PublishedWorks: source.JoinTexts(b.CadObrasPublicadas),
		Awards:         source.JoinTexts(b.CadCondecoracoes),
		Titles:         source.JoinTexts(b.CadTitulos),
		RawData:        rawJSON(b.Raw),
	}
}
