package seed

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Email    string
	Name     string
	Password string
	Role     string
}

var users = []seedUser{
	{Email: "admin@voltride.shop", Name: "Store Admin", Password: "admin123#", Role: "ADMIN"},
	{Email: "rider@example.com", Name: "Demo Rider", Password: "rider123#", Role: "CUSTOMER"},
}

func Users(ctx context.Context, q *dbgen.Queries, log *zap.Logger) error {
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = q.CreateUser(ctx, dbgen.CreateUserParams{
			Email:    u.Email,
			Name:     u.Name,
			Password: string(hashed),
			Role:     u.Role,
		})
		if err != nil {
			// usually a duplicate email from an earlier run
			log.Info("skip seed user", zap.String("email", u.Email), zap.Error(err))
			continue
		}
		log.Info("seeded user", zap.String("email", u.Email), zap.String("role", u.Role))
	}
	return nil
}
