package repositories

import (
	"context"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/repositories/user"
	"github.com/asaplab/asap/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IUserRepository defines the interface for account and profile operations
type IUserRepository interface {
	// Signup creates the user and its role profile in one transaction
	CreateStudentAccount(ctx context.Context, u *models.User, student *models.Student) error
	CreateProfAccount(ctx context.Context, u *models.User, prof *models.Prof) error

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	Activate(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, hash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error

	// UpdateProfile writes the account fields and whichever profile is non-nil
	UpdateProfile(ctx context.Context, u *models.User, student *models.Student, prof *models.Prof) error

	// Profiles return apperrors.ErrResourceNotFound when absent
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetProfByUserID(ctx context.Context, userID int64) (*models.Prof, error)
}

// UserRepository combines all user-related repositories
type UserRepository struct {
	pool    *pgxpool.Pool
	common  *user.Repository
	student *user.StudentRepository
	prof    *user.ProfRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		common:  user.NewRepository(pool),
		student: user.NewStudentRepository(pool),
		prof:    user.NewProfRepository(pool),
	}
}

// CreateStudentAccount inserts the user and the student profile atomically
func (r *UserRepository) CreateStudentAccount(ctx context.Context, u *models.User, student *models.Student) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.common.WithTx(tx).CreateUser(ctx, u); err != nil {
			return err
		}
		student.UserID = u.ID
		student.User = u
		return r.student.WithTx(tx).CreateStudent(ctx, student)
	})
}

// CreateProfAccount inserts the user and the professor profile atomically
func (r *UserRepository) CreateProfAccount(ctx context.Context, u *models.User, prof *models.Prof) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.common.WithTx(tx).CreateUser(ctx, u); err != nil {
			return err
		}
		prof.UserID = u.ID
		prof.User = u
		return r.prof.WithTx(tx).CreateProf(ctx, prof)
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// Activate marks the account active
func (r *UserRepository) Activate(ctx context.Context, userID int64) error {
	return r.common.SetActive(ctx, userID, true)
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.common.UpdatePassword(ctx, userID, hash)
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	return r.common.UpdateLastLogin(ctx, userID)
}

// UpdateProfile updates the account and role profile in one transaction
func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User, student *models.Student, prof *models.Prof) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.common.WithTx(tx).UpdateNameAndSex(ctx, u.ID, u.Name, u.Sex); err != nil {
			return err
		}
		if student != nil {
			if err := r.student.WithTx(tx).UpdateStudent(ctx, student); err != nil {
				return err
			}
		}
		if prof != nil {
			if err := r.prof.WithTx(tx).UpdateProf(ctx, prof); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetStudentByUserID retrieves a student by user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// GetProfByUserID retrieves a professor by user ID
func (r *UserRepository) GetProfByUserID(ctx context.Context, userID int64) (*models.Prof, error) {
	return r.prof.GetProfByUserID(ctx, userID)
}
