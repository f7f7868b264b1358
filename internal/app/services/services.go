package services

import (
	"time"

	appauth "github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/asaplab/asap/internal/pkg/email"
	"github.com/rs/zerolog"
)

// Services groups every business service of the portal
type Services struct {
	Auth       AuthService
	Profile    ProfileService
	Research   ResearchService
	Unit       UnitService
	Enrollment EnrollmentService
	Outcome    OutcomeService
	Catalog    CatalogService
}

// Deps carries what the services are built from
type Deps struct {
	Repos         *repositories.Repositories
	JWT           *auth.JWTService
	Mailer        email.Sender
	BaseURL       string
	ActivationTTL time.Duration
	Logger        zerolog.Logger
}

// NewServices wires every service against the given repositories
func NewServices(d Deps) *Services {
	authz := appauth.NewAuthorizationService(d.Repos.ResearchRepository, d.Repos.UnitRepository)
	component := func(name string) zerolog.Logger {
		return d.Logger.With().Str("component", name).Logger()
	}

	return &Services{
		Auth: NewAuthService(
			d.Repos.UserRepository,
			d.Repos.TokenRepository,
			d.Repos.VerificationTokenRepository,
			d.JWT,
			d.Mailer,
			AuthSettings{BaseURL: d.BaseURL, ActivationTTL: d.ActivationTTL},
			component("auth"),
		),
		Profile:    NewProfileService(d.Repos.UserRepository, component("profile")),
		Research:   NewResearchService(d.Repos.ResearchRepository, d.Repos.UnitRepository, authz, component("research")),
		Unit:       NewUnitService(d.Repos.UnitRepository, authz, component("unit")),
		Enrollment: NewEnrollmentService(d.Repos.ResearchRepository, d.Repos.UnitRepository, d.Repos.RecordRepository, component("enrollment")),
		Outcome:    NewOutcomeService(d.Repos.ResearchRepository, d.Repos.RecordRepository, authz, component("outcome")),
		Catalog:    NewCatalogService(d.Repos.ResearchRepository, component("catalog")),
	}
}
