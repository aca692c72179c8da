package seed

import (
	"context"
	"database/sql"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"go.uber.org/zap"
)

// Run seeds users, the scooter catalog and demo coupons. Safe to rerun.
func Run(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	q := dbgen.New(db)

	steps := []struct {
		name string
		fn   func(context.Context, *dbgen.Queries, *zap.Logger) error
	}{
		{"users", Users},
		{"products", Products},
		{"coupons", Coupons},
	}
	for _, s := range steps {
		if err := s.fn(ctx, q, log); err != nil {
			return err
		}
		log.Info("seed step done", zap.String("step", s.name))
	}
	return nil
}
