package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Demo account credentials created by CreateDemoData
const (
	DemoProfEmail    = "prof@asap.local"
	DemoStudentEmail = "student@asap.local"
	DemoPassword     = "asapdemo1"
)

// CreateDemoData creates an active professor, an active student, one
// research and one unit. Accounts that already exist are left untouched,
// so running it twice is harmless.
func CreateDemoData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	var finalErr error

	profUser := &models.User{Email: DemoProfEmail, Password: hash, Name: "Demo Professor", Sex: models.SexFemale, IsActive: true, IsProf: true}
	prof := &models.Prof{ProfNumber: "P0001", Major: "Psychology"}
	profCreated, err := createIfMissing(ctx, repos.UserRepository, profUser, func() error {
		return repos.UserRepository.CreateProfAccount(ctx, profUser, prof)
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo professor")
		finalErr = errors.Join(finalErr, err)
	}

	studentUser := &models.User{Email: DemoStudentEmail, Password: hash, Name: "Demo Student", Sex: models.SexMale, IsActive: true, IsStudent: true}
	student := &models.Student{StudentNumber: "20240001", Major: "Psychology"}
	if _, err := createIfMissing(ctx, repos.UserRepository, studentUser, func() error {
		return repos.UserRepository.CreateStudentAccount(ctx, studentUser, student)
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo student")
		finalErr = errors.Join(finalErr, err)
	}

	if profCreated {
		if err := createDemoResearch(ctx, repos, prof.ID); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo research")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data ready")
	}
	return finalErr
}

func createIfMissing(ctx context.Context, users repositories.IUserRepository, u *models.User, create func() error) (bool, error) {
	exists, err := users.EmailExists(ctx, u.Email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func createDemoResearch(ctx context.Context, repos *repositories.Repositories, profID int64) error {
	now := time.Now()
	semester := models.SemesterSpring
	if now.Month() >= time.August {
		semester = models.SemesterFall
	}

	research := &models.Research{
		ProfID:      profID,
		Number:      "PSY101",
		Title:       "Visual attention",
		Year:        now.Year(),
		Semester:    semester,
		Description: "Reaction time task, about one hour",
	}
	if err := repos.ResearchRepository.Create(ctx, research); err != nil {
		return err
	}

	unit := &models.Unit{
		ResearchID:    research.ID,
		Place:         "Room 302",
		Date:          now.AddDate(0, 0, 7).Truncate(time.Hour),
		PeriodMinutes: 60,
		MaxCapacity:   10,
		Remark:        "Bring your student ID",
	}
	return repos.UnitRepository.Create(ctx, unit)
}
