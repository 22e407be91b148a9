package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/wirenorm/internal/category"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, category.AP, r.Suppliers["AP BUSINESSWIRE"])
	assert.Equal(t, category.PA, r.Suppliers["PA SPORT DATA"])
	assert.Equal(t, "N2:GB", r.ReutersCountryRemap["N2:UK"])
	assert.Greater(t, len(r.Gazetteer), 200)

	require.NotEmpty(t, r.Presets)
	assert.Equal(t, "all-uk", r.Presets[0].Name)
	assert.Contains(t, r.Presets[0].Criteria[category.PA][0].CategoryCodes, "paCat:HHH")
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Suppliers, r.Suppliers)
}

func TestLoadOverridesOnlySetSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
suppliers:
  "TEST WIRE": AP
presets:
  - name: only-preset
    criteria:
      AP:
        - categoryCodes: ["apCat:x"]
          categoryCodesExclude: ["apCat:y"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	// Overridden sections replaced wholesale.
	assert.Equal(t, map[string]category.Supplier{"TEST WIRE": category.AP}, r.Suppliers)
	require.Len(t, r.Presets, 1)
	assert.Equal(t, "only-preset", r.Presets[0].Name)
	assert.Equal(t, []string{"apCat:x"}, r.Presets[0].Criteria[category.AP][0].CategoryCodes)
	assert.Equal(t, []string{"apCat:y"}, r.Presets[0].Criteria[category.AP][0].CategoryCodesExclude)

	// Untouched sections keep defaults.
	assert.Equal(t, Default().Gazetteer, r.Gazetteer)
	assert.Equal(t, Default().ReutersCountryRemap, r.ReutersCountryRemap)
}

func TestLoadRejectsMissingOrBrokenFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suppliers: ["), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
