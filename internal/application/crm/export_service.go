package crm

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	identitydomain "github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Export page size: the workbook covers every visible prospect, fetched
// in one pass.
const exportBatchSize = 10000

var exportHeaders = []string{
	"Name", "Email", "Phone", "Company", "Role", "State", "Interest",
	"Avg. rating", "Referred by", "Referral contact", "Interest detail",
	"Workers", "Tags", "Owner", "Created at",
}

// ExportService writes the visible prospects to an Excel workbook
type ExportService struct {
	prospectRepo crm.ProspectRepository
	linkRepo     crm.ProspectWorkerRepository
	workerRepo   crm.WorkerRepository
	userRepo     identitydomain.UserRepository
}

// NewExportService creates a new ExportService
func NewExportService(
	prospectRepo crm.ProspectRepository,
	linkRepo crm.ProspectWorkerRepository,
	workerRepo crm.WorkerRepository,
	userRepo identitydomain.UserRepository,
) *ExportService {
	return &ExportService{
		prospectRepo: prospectRepo,
		linkRepo:     linkRepo,
		workerRepo:   workerRepo,
		userRepo:     userRepo,
	}
}

// ProspectsWorkbook builds an xlsx workbook of the prospects visible to
// the principal and returns its bytes
func (s *ExportService) ProspectsWorkbook(ctx context.Context, principal identitydomain.Principal) (*bytes.Buffer, error) {
	scope := ownerScope(principal)

	filter := shared.DefaultFilter()
	filter.PageSize = exportBatchSize

	prospects, err := s.prospectRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(prospects))
	for i := range prospects {
		ids[i] = prospects[i].ID
	}
	ratings, err := s.linkRepo.AverageRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	workerNames, err := s.workerNameIndex(ctx)
	if err != nil {
		return nil, err
	}
	ownerNames, err := s.ownerNameIndex(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Prospects"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		return nil, err
	}

	for i := range prospects {
		p := &prospects[i]

		workers, err := s.prospectWorkerNames(ctx, p.ID, workerNames)
		if err != nil {
			return nil, err
		}

		tags := make([]string, len(p.Tags))
		for j := range p.Tags {
			tags[j] = p.Tags[j].Name
		}

		owner := ""
		if id := p.GetOwnerID(); id != nil {
			owner = ownerNames[*id]
		}

		row := []interface{}{
			p.FullName,
			p.Email,
			p.Phone,
			p.Company,
			p.Role,
			string(p.State),
			string(p.Interest),
			fmt.Sprintf("%.1f", ratings[p.ID]),
			p.ReferredBy,
			p.ReferralContact,
			p.InterestDetail,
			strings.Join(workers, ", "),
			strings.Join(tags, ", "),
			owner,
			p.CreatedAt.Format(time.DateOnly),
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *ExportService) workerNameIndex(ctx context.Context) (map[uuid.UUID]string, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = exportBatchSize

	workers, err := s.workerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]string, len(workers))
	for i := range workers {
		index[workers[i].ID] = workers[i].Name
	}
	return index, nil
}

func (s *ExportService) ownerNameIndex(ctx context.Context) (map[uuid.UUID]string, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]string, len(users))
	for i := range users {
		name := users[i].DisplayName
		if name == "" {
			name = users[i].Username
		}
		index[users[i].ID] = name
	}
	return index, nil
}

func (s *ExportService) prospectWorkerNames(ctx context.Context, prospectID uuid.UUID, names map[uuid.UUID]string) ([]string, error) {
	links, err := s.linkRepo.FindByProspect(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(links))
	for i := range links {
		if name, ok := names[links[i].WorkerID]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}
