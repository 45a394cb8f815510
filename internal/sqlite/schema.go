package sqlite

// Schema DDL. Statements are idempotent so an existing workspace database is
// reused across sessions.
const (
	createWorkspaceMeta = `CREATE TABLE IF NOT EXISTS workspace_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createProductTypes = `CREATE TABLE IF NOT EXISTS product_types (
    product_key TEXT PRIMARY KEY,
    width REAL NOT NULL,
    height REAL NOT NULL
);`

	createVariants = `CREATE TABLE IF NOT EXISTS variants (
    variant_id TEXT PRIMARY KEY,
    product_key TEXT NOT NULL,
    variant_key TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    expected_pads INTEGER NOT NULL,
    is_custom INTEGER NOT NULL,
    UNIQUE (product_key, variant_key),
    FOREIGN KEY (product_key) REFERENCES product_types(product_key) ON DELETE CASCADE
);`

	createPads = `CREATE TABLE IF NOT EXISTS pads (
    pad_id TEXT PRIMARY KEY,
    variant_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    x REAL NOT NULL,
    y REAL NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    required INTEGER NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    UNIQUE (variant_id, ordinal),
    FOREIGN KEY (variant_id) REFERENCES variants(variant_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxVariantsProduct = `CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_key);`
	idxPadsVariant     = `CREATE INDEX IF NOT EXISTS idx_pads_variant ON pads(variant_id, ordinal);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createWorkspaceMeta,
	createProductTypes,
	createVariants,
	createPads,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxVariantsProduct,
	idxPadsVariant,
}

// Workspace metadata keys.
const (
	metaSeeded  = "seeded"
	metaSavedAt = "saved_at"
)
