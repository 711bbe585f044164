package http

import (
	"github.com/employee-records-api/internal/application/auth"
	"github.com/employee-records-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/employee-records-api/internal/infrastructure/jwt"
	s3infra "github.com/employee-records-api/internal/infrastructure/s3"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	EmployeeRepo *dynamo.EmployeeRepo
	FileRepo     *dynamo.FileRepo
	S3Store      *s3infra.Store
	PinStore     auth.PinStore
	Notifier     auth.Notifier
	JWTProvider  *jwtinfra.Provider
}
