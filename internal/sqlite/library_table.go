package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// Save replaces the stored library with lib inside one transaction and marks
// the workspace as seeded. Variant and pad rows get fresh UUID v7 IDs.
func (b *Backend) Save(lib types.Library) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrWorkspaceDetached
	}
	if err := lib.Validate(); err != nil {
		return fmt.Errorf("validating library: %w", err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM pads", "DELETE FROM variants", "DELETE FROM product_types"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing workspace: %w", err)
		}
	}

	for _, key := range lib.Keys() {
		pt := lib[key]
		if _, err := tx.Exec(
			"INSERT INTO product_types (product_key, width, height) VALUES (?, ?, ?)",
			key, pt.Width, pt.Height,
		); err != nil {
			return fmt.Errorf("saving product type %s: %w", key, err)
		}

		for _, vk := range pt.VariantKeys() {
			if err := insertVariant(tx, key, vk, pt.Variants[vk]); err != nil {
				return err
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range map[string]string{metaSeeded: "true", metaSavedAt: now} {
		if _, err := tx.Exec(
			"INSERT INTO workspace_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v,
		); err != nil {
			return fmt.Errorf("saving workspace metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

func insertVariant(tx *sql.Tx, productKey, variantKey string, v *types.ProductVariant) error {
	variantID := generateUUID()
	if _, err := tx.Exec(
		`INSERT INTO variants (variant_id, product_key, variant_key, name, description, expected_pads, is_custom)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		variantID, productKey, variantKey, v.Name, v.Description, v.ExpectedPads, boolToInt(v.IsCustom),
	); err != nil {
		return fmt.Errorf("saving variant %s/%s: %w", productKey, variantKey, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO pads (pad_id, variant_id, ordinal, x, y, width, height, required, name, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing pad insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range v.PadLayout {
		if _, err := stmt.Exec(
			generateUUID(), variantID, i, p.X, p.Y, p.Width, p.Height, boolToInt(p.Required), p.Name, p.Color,
		); err != nil {
			return fmt.Errorf("saving pad %s in %s/%s: %w", p.Name, productKey, variantKey, err)
		}
	}
	return nil
}

// Load reads the stored library. An unseeded workspace yields an empty
// library.
func (b *Backend) Load() (types.Library, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrWorkspaceDetached
	}

	lib := make(types.Library)
	if err := b.loadProductTypes(lib); err != nil {
		return nil, err
	}
	variantsByID, err := b.loadVariants(lib)
	if err != nil {
		return nil, err
	}
	if err := b.loadPads(variantsByID); err != nil {
		return nil, err
	}

	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("stored library is inconsistent: %w", err)
	}
	return lib, nil
}

func (b *Backend) loadProductTypes(lib types.Library) error {
	rows, err := b.db.Query("SELECT product_key, width, height FROM product_types")
	if err != nil {
		return fmt.Errorf("querying product types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var width, height float64
		if err := rows.Scan(&key, &width, &height); err != nil {
			return fmt.Errorf("scanning product type: %w", err)
		}
		lib[key] = types.NewProductType(width, height)
	}
	return rows.Err()
}

func (b *Backend) loadVariants(lib types.Library) (map[string]*types.ProductVariant, error) {
	rows, err := b.db.Query(
		"SELECT variant_id, product_key, variant_key, name, description, expected_pads, is_custom FROM variants",
	)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.ProductVariant)
	for rows.Next() {
		var id, productKey, variantKey, name, description string
		var expected, custom int
		if err := rows.Scan(&id, &productKey, &variantKey, &name, &description, &expected, &custom); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		pt, ok := lib[productKey]
		if !ok {
			return nil, fmt.Errorf("variant %s references unknown product type %q", variantKey, productKey)
		}
		v := &types.ProductVariant{
			Name:         name,
			Description:  description,
			ExpectedPads: expected,
			PadLayout:    []types.PadPosition{},
			IsCustom:     custom != 0,
		}
		pt.Variants[variantKey] = v
		byID[id] = v
	}
	return byID, rows.Err()
}

func (b *Backend) loadPads(variantsByID map[string]*types.ProductVariant) error {
	rows, err := b.db.Query(
		"SELECT variant_id, x, y, width, height, required, name, color FROM pads ORDER BY variant_id, ordinal",
	)
	if err != nil {
		return fmt.Errorf("querying pads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variantID string
		var p types.PadPosition
		var required int
		if err := rows.Scan(&variantID, &p.X, &p.Y, &p.Width, &p.Height, &required, &p.Name, &p.Color); err != nil {
			return fmt.Errorf("scanning pad: %w", err)
		}
		p.Required = required != 0
		v, ok := variantsByID[variantID]
		if !ok {
			return fmt.Errorf("pad %s references unknown variant", p.Name)
		}
		v.PadLayout = append(v.PadLayout, p)
	}
	return rows.Err()
}

// Seeded reports whether Save has been called on this workspace.
func (b *Backend) Seeded() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return false, types.ErrWorkspaceDetached
	}

	var value string
	err := b.db.QueryRow("SELECT value FROM workspace_meta WHERE key = ?", metaSeeded).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading workspace metadata: %w", err)
	}
	return value == "true", nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
