package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
	"github.com/servicedesk-hq/servicedesk/pkg/eventbus"
	"github.com/servicedesk-hq/servicedesk/pkg/excel"
	"github.com/servicedesk-hq/servicedesk/pkg/metrics"
	"github.com/servicedesk-hq/servicedesk/pkg/serrors"
)

// ErrNoPIDColumn rejects sheets whose header row carries no PID column;
// without it every row would fail the required-field check anyway.
var ErrNoPIDColumn = serrors.NewError("ASSETS_IMPORT_NO_PID_COLUMN", "missing PID column")

// ImportResult is the aggregate outcome of one import batch. Errors holds one
// line per failed row, in file order.
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// AssetImportService ingests an uploaded workbook of hardware assets. Rows
// are processed strictly in file order, one at a time: the duplicate guard
// must observe rows committed earlier in the same batch, which sequential
// processing gives for free.
type AssetImportService struct {
	assets    asset.Repository
	users     user.Repository
	publisher eventbus.EventBus
}

func NewAssetImportService(
	assets asset.Repository,
	users user.Repository,
	publisher eventbus.EventBus,
) *AssetImportService {
	return &AssetImportService{
		assets:    assets,
		users:     users,
		publisher: publisher,
	}
}

// Import parses the first sheet of the uploaded workbook and runs the batch.
// Parse failures, sheets without a PID column, and sheets without data rows
// are batch-fatal; everything else is reported per row inside the result.
func (s *AssetImportService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	sheet, err := excel.ReadWorkbook(r)
	if err != nil {
		return nil, err
	}
	if !sheet.HasHeader("PID") {
		return nil, ErrNoPIDColumn
	}
	return s.ImportSheet(ctx, sheet)
}

// ImportSheet runs the per-row pipeline over parsed rows. Each row commits
// independently; a row failure is recorded and never aborts the batch.
func (s *AssetImportService) ImportSheet(ctx context.Context, sheet *excel.Sheet) (*ImportResult, error) {
	metrics.ImportBatches.Inc()
	logger := composables.UseLogger(ctx)

	result := &ImportResult{Errors: []string{}}
	for _, row := range sheet.Rows {
		if err := s.importRow(ctx, row); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", row.Number(), err.Error()))
			metrics.ImportRows.WithLabelValues("failed").Inc()
			continue
		}
		result.Success++
		metrics.ImportRows.WithLabelValues("success").Inc()
	}

	logger.WithField("success", result.Success).
		WithField("failed", result.Failed).
		Info("asset import batch finished")
	return result, nil
}

// importRow is the row-scoped failure boundary: any error returned here
// becomes one failure line and the driver moves on to the next row.
func (s *AssetImportService) importRow(ctx context.Context, row excel.Row) error {
	rawPID, _ := row.Get("PID")
	pid := strings.TrimSpace(rawPID)
	if pid == "" {
		return serrors.NewFieldRequiredError("PID")
	}

	exists, err := s.assets.ExistsByPID(ctx, pid)
	if err != nil {
		return err
	}
	if exists {
		return serrors.NewErrorf("ASSETS_IMPORT_DUPLICATE_PID", "PID '%s' already exists (Skipped)", pid)
	}

	details, err := s.assembleDetails(ctx, row)
	if err != nil {
		return err
	}

	created, err := s.assets.Create(ctx, asset.New(pid, details))
	if err != nil {
		return err
	}
	s.publisher.Publish(asset.NewCreatedEvent(created))
	return nil
}

func (s *AssetImportService) assembleDetails(ctx context.Context, row excel.Row) (asset.Details, error) {
	cell := func(names ...string) string {
		v, _ := row.GetAny(names...)
		return strings.TrimSpace(v)
	}
	date := func(names ...string) *time.Time {
		v, _ := row.GetAny(names...)
		return excel.ParseDate(v)
	}

	details := asset.Details{
		Type:          asset.CoerceType(cell("Type")),
		Ownership:     asset.CoerceOwnership(cell("Ownership")),
		Status:        asset.CoerceStatus(cell("Status")),
		Brand:         cell("Brand"),
		Model:         cell("Model"),
		SerialNumber:  cell("Serial Number", "serial number "),
		OldTag:        cell("Old Tag"),
		OldUser:       cell("Old User"),
		PurchasedAt:   date("Purchased Date", "Date of purchase"),
		WarrantyAt:    date("Warranty Date"),
		AssignedAt:    date("Assigned Date"),
		ReturnAt:      date("Return Date"),
		MaintenanceAt: date("Maintenance Date"),
		Components:    asset.ParseComponents(cell("Components")),
		Attributes:    assembleAttributes(row),
	}

	if raw := cell("Price"); raw != "" {
		if p, err := decimal.NewFromString(raw); err == nil {
			details.Price = &p
		}
	}

	assignee, err := s.resolveAssignee(ctx, cell("Assigned To User Email", "Assigned User", "Email"))
	if err != nil {
		return asset.Details{}, err
	}
	details.AssignedTo = assignee
	return details, nil
}

// resolveAssignee maps a free-text identifier to a user reference. Blank,
// placeholder, too-short, and unknown identifiers all mean "leave the asset
// unassigned"; the row still succeeds.
func (s *AssetImportService) resolveAssignee(ctx context.Context, identifier string) (*uuid.UUID, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || identifier == "-" || len(identifier) < 2 {
		return nil, nil
	}

	u, err := s.users.GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	id := u.ID()
	return &id, nil
}

// assembleAttributes builds the free-form attribute bag. Boolean flags are
// included only when truthy; an empty bag is omitted entirely.
func assembleAttributes(row excel.Row) []asset.Attribute {
	var attrs []asset.Attribute

	addText := func(key string, names ...string) {
		if v, _ := row.GetAny(names...); strings.TrimSpace(v) != "" {
			attrs = append(attrs, asset.Attribute{Key: key, Value: strings.TrimSpace(v)})
		}
	}
	addFlag := func(key string, names ...string) {
		if v, _ := row.GetAny(names...); excel.Bool(v) {
			attrs = append(attrs, asset.Attribute{Key: key, Value: "true"})
		}
	}

	addText(asset.AttrRAM, "RAM")
	addText(asset.AttrProcessor, "Processor")
	addText(asset.AttrOS, "OS")
	addText(asset.AttrStorage, "Storage")
	addText(asset.AttrPassword, "password", "password ")
	addText(asset.AttrVendorInvoice, "Vendor Invoice")
	addText(asset.AttrNote, "Note")
	addFlag(asset.AttrCharger, "CHARGER")
	addFlag(asset.AttrMouse, "MOUSE")
	addFlag(asset.AttrMobile, "MOBILE")

	return attrs
}
