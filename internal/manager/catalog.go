package manager

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openkcm/rs-cli/internal/constants"
	"github.com/openkcm/rs-cli/internal/log"
	"github.com/openkcm/rs-cli/internal/reportserver"
	"github.com/openkcm/rs-cli/utils/slice"
)

// ReportServer is the subset of ReportService2010 the catalog operations need
type ReportServer interface {
	GetDataSourceContents(ctx context.Context, path string) (*reportserver.DataSourceDefinition, error)
	SetDataSourceContents(ctx context.Context, path string, definition *reportserver.DataSourceDefinition) error
	DeleteItem(ctx context.Context, path string) error
	GetPolicies(ctx context.Context, path string) ([]reportserver.Policy, bool, error)
	SetPolicies(ctx context.Context, path string, policies []reportserver.Policy) error
}

var _ ReportServer = (*reportserver.Client)(nil)

type Catalog interface {
	GetDataSource(ctx context.Context, path string) (*reportserver.DataSourceDefinition, error)
	SetDataSourcePassword(ctx context.Context, path, password string) error
	DeleteItem(ctx context.Context, path string) error
	ListAccess(ctx context.Context, path string) ([]reportserver.Policy, bool, error)
	RevokeAccess(ctx context.Context, path, identity string, strict bool) (bool, error)
	GrantAccess(ctx context.Context, path, identity, role string, strict bool) (bool, error)
}

type CatalogManager struct {
	rs ReportServer
}

var _ Catalog = (*CatalogManager)(nil)

func NewCatalogManager(rs ReportServer) *CatalogManager {
	return &CatalogManager{rs: rs}
}

func (m *CatalogManager) GetDataSource(ctx context.Context, path string) (*reportserver.DataSourceDefinition, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	ctx = log.InjectItem(ctx, path)

	definition, err := m.rs.GetDataSourceContents(ctx, path)
	if err != nil {
		return nil, newOperationError(ErrGetDataSource, path, err)
	}

	return definition, nil
}

// SetDataSourcePassword replaces the stored password of a shared data source
// and keeps every other field of its definition as the server returned it.
// An empty password is rejected, the server would keep the old one.
func (m *CatalogManager) SetDataSourcePassword(ctx context.Context, path, password string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}

	if password == "" {
		return ErrEmptyPassword
	}

	ctx = log.InjectItem(ctx, path)

	definition, err := m.rs.GetDataSourceContents(ctx, path)
	if err != nil {
		return newOperationError(ErrGetDataSource, path, err)
	}

	if definition.CredentialRetrieval != constants.CredentialRetrievalStore {
		log.Warn(ctx, "Data source does not use stored credentials, password will be ignored",
			slog.String("credentialRetrieval", definition.CredentialRetrieval),
		)
	}

	definition.Password = password

	err = m.rs.SetDataSourceContents(ctx, path, definition)
	if err != nil {
		return newOperationError(ErrSetDataSource, path, err)
	}

	log.Info(ctx, "Data source password updated")

	return nil
}

func (m *CatalogManager) DeleteItem(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}

	ctx = log.InjectItem(ctx, path)

	err := m.rs.DeleteItem(ctx, path)
	if err != nil {
		return newOperationError(ErrDeleteItem, path, err)
	}

	log.Info(ctx, "Catalog item deleted")

	return nil
}

// ListAccess returns the policies of an item and whether they are inherited
func (m *CatalogManager) ListAccess(ctx context.Context, path string) ([]reportserver.Policy, bool, error) {
	if strings.TrimSpace(path) == "" {
		return nil, false, ErrEmptyPath
	}

	ctx = log.InjectItem(ctx, path)

	policies, inherit, err := m.rs.GetPolicies(ctx, path)
	if err != nil {
		return nil, false, newOperationError(ErrGetPolicies, path, err)
	}

	return policies, inherit, nil
}

// RevokeAccess removes every policy of identity from the item and reports
// whether the item changed. When identity holds no policy, strict mode fails
// with ErrNoAccessToRevoke and non strict mode leaves the item untouched.
// Neither case writes to the server.
func (m *CatalogManager) RevokeAccess(ctx context.Context, path, identity string, strict bool) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, ErrEmptyPath
	}

	if strings.TrimSpace(identity) == "" {
		return false, ErrEmptyIdentity
	}

	ctx = log.InjectIdentity(log.InjectItem(ctx, path), identity)

	policies, inherit, err := m.rs.GetPolicies(ctx, path)
	if err != nil {
		return false, newOperationError(ErrGetPolicies, path, err)
	}

	remaining, removed := RemoveIdentity(policies, identity)
	if !removed {
		if strict {
			return false, newOperationError(ErrNoAccessToRevoke, identity, nil)
		}

		log.Info(ctx, "Identity has no policy on item, nothing to revoke")

		return false, nil
	}

	err = m.submitPolicies(ctx, path, remaining, inherit)
	if err != nil {
		return false, err
	}

	return true, nil
}

// GrantAccess adds role for identity on the item, creating the policy if the
// identity has none, and reports whether the item changed. A role that is
// already granted fails in strict mode and is skipped otherwise.
func (m *CatalogManager) GrantAccess(ctx context.Context, path, identity, role string, strict bool) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, ErrEmptyPath
	}

	if strings.TrimSpace(identity) == "" {
		return false, ErrEmptyIdentity
	}

	if strings.TrimSpace(role) == "" {
		return false, ErrEmptyRole
	}

	ctx = log.InjectIdentity(log.InjectItem(ctx, path), identity)

	policies, inherit, err := m.rs.GetPolicies(ctx, path)
	if err != nil {
		return false, newOperationError(ErrGetPolicies, path, err)
	}

	updated, added := AddRole(policies, identity, role)
	if !added {
		if strict {
			return false, newOperationError(ErrRoleAlreadyGranted, identity, nil)
		}

		log.Info(ctx, "Role already granted, nothing to do", slog.String("role", role))

		return false, nil
	}

	err = m.submitPolicies(ctx, path, updated, inherit)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (m *CatalogManager) submitPolicies(
	ctx context.Context,
	path string,
	policies []reportserver.Policy,
	inherit bool,
) error {
	if inherit {
		log.Warn(ctx, "Item inherits policies from its parent, inheritance will be broken")
	}

	err := m.rs.SetPolicies(ctx, path, policies)
	if err != nil {
		return newOperationError(ErrSetPolicies, path, err)
	}

	log.Info(ctx, "Policies updated", slog.Int("policies", len(policies)))

	return nil
}

// RemoveIdentity returns policies without the entries of identity and whether
// any entry was removed. Other entries keep their order and roles.
func RemoveIdentity(policies []reportserver.Policy, identity string) ([]reportserver.Policy, bool) {
	remaining, removed := slice.Partition(policies, func(p reportserver.Policy) bool {
		return !p.Matches(identity)
	})

	return remaining, len(removed) > 0
}

// AddRole returns policies with role granted to identity and whether anything
// changed. The input is not modified.
func AddRole(policies []reportserver.Policy, identity, role string) ([]reportserver.Policy, bool) {
	updated := make([]reportserver.Policy, 0, len(policies)+1)
	found := false
	added := false

	for _, p := range policies {
		if p.Matches(identity) && !found {
			found = true

			if !p.HasRole(role) {
				p.Roles = append(append([]reportserver.Role(nil), p.Roles...), reportserver.Role{Name: role})
				added = true
			}
		}

		updated = append(updated, p)
	}

	if !found {
		updated = append(updated, reportserver.Policy{
			GroupUserName: identity,
			Roles:         []reportserver.Role{{Name: role}},
		})
		added = true
	}

	return updated, added
}
