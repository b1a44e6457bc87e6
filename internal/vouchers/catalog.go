package vouchers

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

var (
	validate       = validator.New()
	hundredPercent = decimal.NewFromInt(100)
)

// Catalog is a read-only lookup table of promotional codes.
type Catalog struct {
	byCode   map[string]Voucher
	featured []string
}

// NewCatalog validates every entry and indexes it by its canonical code.
// Percentages outside (0, 100] and non-positive values are rejected here so
// the discount math never sees them.
func NewCatalog(entries []Voucher, featured ...string) (*Catalog, error) {
	byCode := make(map[string]Voucher, len(entries))
	for i, entry := range entries {
		entry.Code = NormalizeCode(entry.Code)
		if err := validateEntry(entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("voucher entry %d invalid", i)).
				WithDetails(map[string]any{"index": i, "code": entry.Code})
		}
		if _, dup := byCode[entry.Code]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("duplicate voucher code %s", entry.Code))
		}
		byCode[entry.Code] = entry
	}

	canonical := make([]string, 0, len(featured))
	for _, code := range featured {
		code = NormalizeCode(code)
		if _, ok := byCode[code]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("featured voucher %s not in catalog", code))
		}
		canonical = append(canonical, code)
	}

	return &Catalog{byCode: byCode, featured: canonical}, nil
}

func validateEntry(v Voucher) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if !v.Value.IsPositive() {
		return fmt.Errorf("value must be positive, got %s", v.Value)
	}
	if v.Kind == KindPercentage && v.Value.GreaterThan(hundredPercent) {
		return fmt.Errorf("percentage must not exceed 100, got %s", v.Value)
	}
	return nil
}

// Lookup finds a voucher by code, ignoring case and surrounding whitespace.
func (c *Catalog) Lookup(code string) (Voucher, bool) {
	if c == nil {
		return Voucher{}, false
	}
	v, ok := c.byCode[NormalizeCode(code)]
	return v, ok
}

// Featured returns the vouchers advertised as available offers.
func (c *Catalog) Featured() []Voucher {
	if c == nil {
		return nil
	}
	out := make([]Voucher, 0, len(c.featured))
	for _, code := range c.featured {
		out = append(out, c.byCode[code])
	}
	return out
}

// All returns every voucher sorted by code.
func (c *Catalog) All() []Voucher {
	if c == nil {
		return nil
	}
	out := make([]Voucher, 0, len(c.byCode))
	for _, v := range c.byCode {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

type catalogFile struct {
	Featured []string  `json:"featured"`
	Vouchers []Voucher `json:"vouchers"`
}

// LoadFile reads a JSON catalog of the form {"featured": [...], "vouchers": [...]}.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading voucher catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode voucher catalog")
	}
	return NewCatalog(file.Vouchers, file.Featured...)
}

// DefaultCatalog returns the storefront's built-in codes.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog([]Voucher{
		{Code: "ROYAL10", Kind: KindPercentage, Value: decimal.NewFromInt(10), MinimumOrder: 1000, Description: "10% OFF on Royal Feast"},
		{Code: "FATIMA500", Kind: KindFixed, Value: decimal.NewFromInt(500), MinimumOrder: 3000, Description: "Rs. 500 Flat Discount"},
		{Code: "FIRSTORDER", Kind: KindPercentage, Value: decimal.NewFromInt(20), MinimumOrder: 500, Description: "Welcome 20% Discount"},
	}, "ROYAL10", "FIRSTORDER")
	if err != nil {
		panic(fmt.Sprintf("built-in voucher catalog invalid: %v", err))
	}
	return catalog
}
