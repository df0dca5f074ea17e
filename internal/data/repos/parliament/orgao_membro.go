package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type OrgaoMembroRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.OrgaoMembro) error
	ListByOrgao(dbc dbctx.Context, orgaoID uint) ([]*parliament.OrgaoMembro, error)
	ListMemberFacts(dbc dbctx.Context) ([]*parliament.OrgaoMembro, error)
}

type orgaoMembroRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrgaoMembroRepo(db *gorm.DB, baseLog *logger.Logger) OrgaoMembroRepo {
	return &orgaoMembroRepo{db: db, log: baseLog.With("repo", "OrgaoMembroRepo")}
}

func (r *orgaoMembroRepo) Upsert(dbc dbctx.Context, row *parliament.OrgaoMembro) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "orgao_id"}, {Name: "dep_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dep_cad_id", "deputy_name", "party", "role", "member_type",
			"start_date", "end_date", "raw_data", "updated_at",
		}),
	}).Create(row).Error
}

func (r *orgaoMembroRepo) ListByOrgao(dbc dbctx.Context, orgaoID uint) ([]*parliament.OrgaoMembro, error) {
	var out []*parliament.OrgaoMembro
	if err := dbc.DB(r.db).Where("orgao_id = ?", orgaoID).
		Order("CASE WHEN role IS NOT NULL THEN 0 ELSE 1 END, party ASC, deputy_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListMemberFacts returns (orgao_id, party) for every membership.
func (r *orgaoMembroRepo) ListMemberFacts(dbc dbctx.Context) ([]*parliament.OrgaoMembro, error) {
	var out []*parliament.OrgaoMembro
	if err := dbc.DB(r.db).Select("orgao_id", "party").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
