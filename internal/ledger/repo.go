package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andersonseixas/fornecedor-backend/pkg/config"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
)

// Repository persists and reads the append-only sales ledger.
type Repository interface {
	// AppendBatch writes all records of one order and returns the name
	// of the file they landed in.
	AppendBatch(ctx context.Context, records []SaleRecord) (string, error)
	// Load reads every persisted record. A missing file is not an
	// error; unparsable numeric cells coerce to zero with a warning.
	Load(ctx context.Context) ([]SaleRecord, error)
	// OpenOrderFile opens a previously written order file by bare name.
	OpenOrderFile(ctx context.Context, name string) (io.ReadCloser, error)
}

var orderFilePattern = regexp.MustCompile(`^venda_[^/\\]+\.csv$`)

// FileRepository writes CSV ledgers under one directory, either as a
// single shared file or as one file per order. The mutex serializes
// appends within this process only; concurrent appends from other
// processes can still interleave, exactly as in the source system.
type FileRepository struct {
	mu   sync.Mutex
	cfg  config.LedgerConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewFileRepository prepares the ledger directory. The logger may be
// nil; coercion warnings are then dropped.
func NewFileRepository(cfg config.LedgerConfig, logg *logger.Logger) (*FileRepository, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("ledger dir required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &FileRepository{cfg: cfg, logg: logg, now: time.Now}, nil
}

// WithClock swaps the time source; used by tests for deterministic
// per-order filenames.
func (r *FileRepository) WithClock(now func() time.Time) *FileRepository {
	r.now = now
	return r
}

func (r *FileRepository) AppendBatch(ctx context.Context, records []SaleRecord) (string, error) {
	if len(records) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "no records to append")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg.PerOrder() {
		return r.writeOrderFile(records)
	}
	return r.appendShared(records)
}

func (r *FileRepository) appendShared(records []SaleRecord) (string, error) {
	path := filepath.Join(r.cfg.Dir, r.cfg.SharedFile)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open shared ledger")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stat shared ledger")
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write ledger header")
		}
	}
	if err := writeRecords(w, records); err != nil {
		return "", err
	}
	return r.cfg.SharedFile, nil
}

func (r *FileRepository) writeOrderFile(records []SaleRecord) (string, error) {
	name := OrderFileName(records[0].BuyerName, r.now())
	path := filepath.Join(r.cfg.Dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write ledger header")
	}
	if err := writeRecords(w, records); err != nil {
		return "", err
	}
	return name, nil
}

func writeRecords(w *csv.Writer, records []SaleRecord) error {
	for _, record := range records {
		if err := w.Write(record.row()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write ledger row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flush ledger")
	}
	return nil
}

// OrderFileName derives the per-order filename: buyer name uppercased
// with spaces as underscores, plus a to-the-second timestamp.
func OrderFileName(buyerName string, at time.Time) string {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(buyerName), " ", "_"))
	return fmt.Sprintf("venda_%s_%s.csv", name, at.Format("20060102150405"))
}

func (r *FileRepository) Load(ctx context.Context) ([]SaleRecord, error) {
	if r.cfg.PerOrder() {
		return r.loadOrderFiles(ctx)
	}
	return r.loadFile(ctx, filepath.Join(r.cfg.Dir, r.cfg.SharedFile))
}

func (r *FileRepository) loadOrderFiles(ctx context.Context) ([]SaleRecord, error) {
	matches, err := filepath.Glob(filepath.Join(r.cfg.Dir, "venda_*.csv"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan ledger dir")
	}
	var all []SaleRecord
	for _, path := range matches {
		records, err := r.loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func (r *FileRepository) loadFile(ctx context.Context, path string) ([]SaleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open ledger")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read ledger header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	var records []SaleRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read ledger row")
		}
		records = append(records, r.coerceRecord(ctx, path, row, cols))
	}
	return records, nil
}

func (r *FileRepository) coerceRecord(ctx context.Context, path string, row []string, cols map[string]int) SaleRecord {
	cell := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	return SaleRecord{
		Date:         cell("Data da Compra"),
		BuyerName:    cell("Nome do Comprador"),
		Company:      cell("Empresa"),
		Email:        cell("Email"),
		Product:      cell("Produto"),
		Category:     cell("Categoria"),
		Quantity:     r.coerceInt(ctx, path, "Quantidade", cell("Quantidade")),
		UnitPrice:    r.coerceDecimal(ctx, path, "Valor Unitário (R$)", cell("Valor Unitário (R$)")),
		LineTotal:    r.coerceDecimal(ctx, path, "Valor Total (R$)", cell("Valor Total (R$)")),
		SurchargePct: r.coerceDecimal(ctx, path, "Encargo (%)", cell("Encargo (%)")),
		SurchargeAmt: r.coerceDecimal(ctx, path, "Encargo (R$)", cell("Encargo (R$)")),
	}
}

// coerceDecimal substitutes zero for unparsable cells so one bad cell
// never sinks a whole aggregation.
func (r *FileRepository) coerceDecimal(ctx context.Context, path, col, raw string) decimal.Decimal {
	value, err := money.Parse(raw)
	if err != nil {
		r.warnCoercion(ctx, path, col, raw)
		return decimal.Zero
	}
	return value
}

func (r *FileRepository) coerceInt(ctx context.Context, path, col, raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		r.warnCoercion(ctx, path, col, raw)
		return 0
	}
	return value
}

func (r *FileRepository) warnCoercion(ctx context.Context, path, col, raw string) {
	if r.logg == nil {
		return
	}
	ctx = r.logg.WithFields(ctx, map[string]any{
		"file":   path,
		"column": col,
		"value":  raw,
	})
	r.logg.Warn(ctx, "ledger.coercion_failed")
}

func (r *FileRepository) OpenOrderFile(ctx context.Context, name string) (io.ReadCloser, error) {
	// Bare filename only; reject anything that could escape the dir.
	if name != filepath.Base(name) || !orderFilePattern.MatchString(name) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order file name")
	}
	f, err := os.Open(filepath.Join(r.cfg.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open order file")
	}
	return f, nil
}
