package seed

import (
	"context"
	"errors"

	appModels "github.com/Anuragprasad270204/hostel-management/internal/app/models"
	appRepos "github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/config"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// CreateDefaultData creates the default admin account and a starter hostel
// if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	hostelRepo := appRepos.NewHostelRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, starter hostel)...")
	var finalErr error

	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@hostel.local")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "ChangeMe123!")

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:    adminEmail,
				Password: hashed,
				Role:     appModels.RoleAdmin,
			}
			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else if err == nil {
				lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
			}
		}
	}

	// A starter hostel so a fresh install can take bookings right away
	hostels, err := hostelRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing hostels during seeding")
		finalErr = errors.Join(finalErr, err)
	} else if len(hostels) == 0 {
		starter := &appModels.Hostel{
			Name:        "Main Hostel",
			Address:     "Campus",
			Capacity:    100,
			Description: "Default hostel created at first startup",
		}
		if err := hostelRepo.Create(ctx, starter); err != nil && !errors.Is(err, apperrors.ErrHostelAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating starter hostel")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Int64("hostelID", starter.ID).Msg("Starter hostel created")
		}
	}

	return finalErr
}
