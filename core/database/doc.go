// Package database opens the local replica database.
//
// Connect wraps GORM and supports two drivers: mysql for a shared server-side
// replica and sqlite for an embedded single-device replica. The feature stores
// migrate their own tables; RequireColumns lets them verify an existing schema
// before serving.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("local replica unavailable", zap.Error(err))
//	}
package database
