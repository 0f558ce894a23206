package reconcile

// Config holds the sync settings shared by the server and the sync commands.
type Config struct {
	// DayPrefix is the object prefix of day snapshots in the remote bucket.
	DayPrefix string `mapstructure:"day_prefix" default:"days/"`
	// CatalogObject is the object holding the remote product catalog.
	CatalogObject string `mapstructure:"catalog_object" default:"catalog/products.json"`
	// Concurrency bounds parallel keys in a full sweep.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// DryRun plans without writing. The sync command's --dry-run flag overrides it.
	DryRun bool `mapstructure:"dry_run" default:"false"`
}
