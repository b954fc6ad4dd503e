package unitofwork

import (
	"context"

	"agency-site-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PostRepository() contract.PostRepository
	JobRepository() contract.JobRepository
	LeadRepository() contract.LeadRepository
	GlobalRepository() contract.GlobalRepository
	MediaRepository() contract.MediaRepository
	AdminUserRepository() contract.AdminUserRepository
}
