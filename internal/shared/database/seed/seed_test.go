package seed_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/seed"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var couponCols = []string{"id", "code", "discount_type", "discount_value", "currency", "min_subtotal", "valid_from", "valid_to", "is_active", "created_at"}

func TestCoupons(t *testing.T) {
	t.Run("all_inserted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for _, code := range []string{"SAVE10", "RIDE50", "EURO20", "SUMMER"} {
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupons")).
				WithArgs(code, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), true).
				WillReturnRows(sqlmock.NewRows(couponCols).
					AddRow(uuid.NewString(), code, "percentage", "10", nil, "0", nil, nil, true, time.Now()))
		}

		require.NoError(t, seed.Coupons(context.Background(), dbgen.New(db), zap.NewNop()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops_on_error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupons")).WillReturnError(errors.New("relation does not exist"))

		err = seed.Coupons(context.Background(), dbgen.New(db), zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SAVE10")
	})
}
