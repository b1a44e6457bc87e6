package vouchers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

func TestDefaultCatalogLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()

	for _, input := range []string{"ROYAL10", "royal10", "  Royal10\t"} {
		v, ok := catalog.Lookup(input)
		require.True(t, ok, "expected %q to resolve", input)
		assert.Equal(t, "ROYAL10", v.Code)
		assert.Equal(t, KindPercentage, v.Kind)
		assert.True(t, v.Value.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, int64(1000), v.MinimumOrder)
	}

	_, ok := catalog.Lookup("ROYAL11")
	assert.False(t, ok)
	_, ok = catalog.Lookup("")
	assert.False(t, ok)
}

func TestDefaultCatalogEntries(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()

	flat, ok := catalog.Lookup("fatima500")
	require.True(t, ok)
	assert.Equal(t, KindFixed, flat.Kind)
	assert.Equal(t, int64(3000), flat.MinimumOrder)

	welcome, ok := catalog.Lookup("FIRSTORDER")
	require.True(t, ok)
	assert.True(t, welcome.Value.Equal(decimal.NewFromInt(20)))

	codes := []string{}
	for _, v := range catalog.All() {
		codes = append(codes, v.Code)
	}
	assert.Equal(t, []string{"FATIMA500", "FIRSTORDER", "ROYAL10"}, codes)

	featured := catalog.Featured()
	require.Len(t, featured, 2)
	assert.Equal(t, "ROYAL10", featured[0].Code)
	assert.Equal(t, "FIRSTORDER", featured[1].Code)
}

func TestNilCatalogLookup(t *testing.T) {
	var catalog *Catalog
	_, ok := catalog.Lookup("ROYAL10")
	assert.False(t, ok)
	assert.Nil(t, catalog.Featured())
}

func TestNewCatalogRejectsMalformedEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry Voucher
	}{
		{name: "empty code", entry: Voucher{Code: "  ", Kind: KindFixed, Value: decimal.NewFromInt(5)}},
		{name: "unknown kind", entry: Voucher{Code: "X", Kind: "bogo", Value: decimal.NewFromInt(5)}},
		{name: "zero value", entry: Voucher{Code: "X", Kind: KindFixed, Value: decimal.Zero}},
		{name: "negative value", entry: Voucher{Code: "X", Kind: KindFixed, Value: decimal.NewFromInt(-5)}},
		{name: "over 100 percent", entry: Voucher{Code: "X", Kind: KindPercentage, Value: decimal.NewFromInt(120)}},
		{name: "negative minimum", entry: Voucher{Code: "X", Kind: KindPercentage, Value: decimal.NewFromInt(5), MinimumOrder: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCatalog([]Voucher{tt.entry})
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "unexpected error %v", err)
		})
	}
}

func TestNewCatalogAllowsFullPercentage(t *testing.T) {
	t.Parallel()

	catalog, err := NewCatalog([]Voucher{{Code: "free", Kind: KindPercentage, Value: decimal.NewFromInt(100)}})
	require.NoError(t, err)
	v, ok := catalog.Lookup("FREE")
	require.True(t, ok)
	assert.Equal(t, "FREE", v.Code)
}

func TestNewCatalogRejectsDuplicatesAfterNormalization(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Voucher{
		{Code: "royal10", Kind: KindPercentage, Value: decimal.NewFromInt(10)},
		{Code: "ROYAL10 ", Kind: KindPercentage, Value: decimal.NewFromInt(15)},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestNewCatalogRejectsUnknownFeaturedCode(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Voucher{{Code: "A", Kind: KindFixed, Value: decimal.NewFromInt(1)}}, "B")
	require.Error(t, err)
}

func TestLoadFileAcceptsLegacyFlatKind(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vouchers.json")
	body := `{
  "featured": ["eid25"],
  "vouchers": [
    {"code": "eid25", "kind": "percentage", "value": 25, "minimumOrder": 2000, "description": "Eid special"},
    {"code": "flat300", "kind": "flat", "value": "300", "minimumOrder": 1500, "description": "Rs. 300 off"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	catalog, err := LoadFile(path)
	require.NoError(t, err)

	flat, ok := catalog.Lookup("FLAT300")
	require.True(t, ok)
	assert.Equal(t, KindFixed, flat.Kind)
	assert.True(t, flat.Value.Equal(decimal.NewFromInt(300)))

	require.Len(t, catalog.Featured(), 1)
	assert.Equal(t, "EID25", catalog.Featured()[0].Code)
}

func TestLoadFileRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vouchers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vouchers":[{"code":"x","kind":"bogo","value":1}]}`), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestVoucherEligible(t *testing.T) {
	v := Voucher{MinimumOrder: 1000}
	assert.True(t, v.Eligible(1000))
	assert.True(t, v.Eligible(1200))
	assert.False(t, v.Eligible(999))
}
