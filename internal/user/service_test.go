// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

// fakeRepository keeps users in memory and applies the same tenant filter the
// real repository pushes into SQL.
type fakeRepository struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[int64]*User), nextID: 1}
}

func (f *fakeRepository) add(u User) *User {
	u.ID = f.nextID
	f.nextID++
	u.IsActive = true
	f.users[u.ID] = &u
	return &u
}

func (f *fakeRepository) visible(u *User, scope rbac.Scope) bool {
	if u.DeletedAt != nil {
		return false
	}
	if scope.Unrestricted() {
		return true
	}
	return u.TenantID != nil && *u.TenantID == scope.TenantID()
}

func (f *fakeRepository) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email && existing.DeletedAt == nil {
			return core.ErrDuplicateKey
		}
	}
	u.ID = f.nextID
	f.nextID++
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	scope rbac.Scope,
	id int64,
) (*User, error) {
	u, ok := f.users[id]
	if !ok || !f.visible(u, scope) {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepository) Update(
	_ context.Context,
	scope rbac.Scope,
	u *User,
) error {
	existing, ok := f.users[u.ID]
	if !ok || !f.visible(existing, scope) {
		return core.ErrNotFound
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdatePassword(
	_ context.Context,
	id int64,
	hash string,
) error {
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeRepository) SoftDelete(
	_ context.Context,
	scope rbac.Scope,
	id int64,
) error {
	u, ok := f.users[id]
	if !ok || !f.visible(u, scope) {
		return core.ErrNotFound
	}
	deleted := *u
	u.DeletedAt = &deleted.CreatedAt
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	scope rbac.Scope,
) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if f.visible(u, scope) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepository) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func tenantIdentity(id, tenantID int64, role string) *rbac.Identity {
	return &rbac.Identity{
		UserID:   id,
		Role:     role,
		TenantID: &tenantID,
	}
}

func TestListScopedToOwnTenant(t *testing.T) {
	repo := newFakeRepository()
	tenantA, tenantB := int64(1), int64(2)
	repo.add(User{Email: "a@x.com", Role: rbac.RoleStaff, TenantID: &tenantA})
	repo.add(User{Email: "b@x.com", Role: rbac.RoleStaff, TenantID: &tenantB})

	svc := NewService(repo)

	users, err := svc.List(
		context.Background(),
		tenantIdentity(99, tenantA, rbac.RoleOperatorAdmin),
	)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)
}

func TestListSuperAdminSeesEverything(t *testing.T) {
	repo := newFakeRepository()
	tenantA, tenantB := int64(1), int64(2)
	repo.add(User{Email: "a@x.com", Role: rbac.RoleStaff, TenantID: &tenantA})
	repo.add(User{Email: "b@x.com", Role: rbac.RoleStaff, TenantID: &tenantB})

	svc := NewService(repo)

	users, err := svc.List(
		context.Background(),
		&rbac.Identity{UserID: 1, Role: rbac.RoleSuperAdmin},
	)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCreateRejectsHigherRole(t *testing.T) {
	svc := NewService(newFakeRepository())
	tenantID := int64(1)

	_, err := svc.Create(
		context.Background(),
		tenantIdentity(1, tenantID, rbac.RoleOperationsManager),
		&CreateUserRequest{
			Email:    "new@x.com",
			Password: "Str0ngPass",
			Role:     rbac.RoleOperatorAdmin,
		},
	)
	assert.ErrorIs(t, err, ErrRoleNotAssignable)
}

func TestCreateForcesCallerTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	tenantID := int64(1)
	otherTenant := int64(9)

	created, err := svc.Create(
		context.Background(),
		tenantIdentity(1, tenantID, rbac.RoleOperatorAdmin),
		&CreateUserRequest{
			Email:    "New@X.com",
			Password: "Str0ngPass",
			Role:     rbac.RoleStaff,
			TenantID: &otherTenant,
		},
	)
	require.NoError(t, err)

	require.NotNil(t, created.TenantID)
	assert.Equal(t, tenantID, *created.TenantID)
	assert.Equal(t, "new@x.com", created.Email)
}

func TestCreateSuperAdminMayPickTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	target := int64(9)

	created, err := svc.Create(
		context.Background(),
		&rbac.Identity{UserID: 1, Role: rbac.RoleSuperAdmin},
		&CreateUserRequest{
			Email:    "new@x.com",
			Password: "Str0ngPass",
			Role:     rbac.RoleStaff,
			TenantID: &target,
		},
	)
	require.NoError(t, err)
	require.NotNil(t, created.TenantID)
	assert.Equal(t, target, *created.TenantID)
}

func TestCreateRejectsWeakPassword(t *testing.T) {
	svc := NewService(newFakeRepository())
	tenantID := int64(1)

	_, err := svc.Create(
		context.Background(),
		tenantIdentity(1, tenantID, rbac.RoleOperatorAdmin),
		&CreateUserRequest{
			Email:    "new@x.com",
			Password: "alllowercase",
			Role:     rbac.RoleStaff,
		},
	)
	require.Error(t, err)
	assert.True(t, core.IsAppError(err))
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	tenantID := int64(1)
	repo.add(User{
		Email: "taken@x.com", Role: rbac.RoleStaff, TenantID: &tenantID,
	})

	svc := NewService(repo)

	_, err := svc.Create(
		context.Background(),
		tenantIdentity(1, tenantID, rbac.RoleOperatorAdmin),
		&CreateUserRequest{
			Email:    "taken@x.com",
			Password: "Str0ngPass",
			Role:     rbac.RoleStaff,
		},
	)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdateRoleEscalationBlocked(t *testing.T) {
	repo := newFakeRepository()
	tenantID := int64(1)
	target := repo.add(User{
		Email: "s@x.com", Role: rbac.RoleStaff, TenantID: &tenantID,
	})

	svc := NewService(repo)
	newRole := rbac.RoleOperatorAdmin

	_, err := svc.Update(
		context.Background(),
		tenantIdentity(99, tenantID, rbac.RoleOperationsManager),
		target.ID,
		&UpdateUserRequest{Role: &newRole},
	)
	assert.ErrorIs(t, err, ErrRoleNotAssignable)
}

func TestUpdateCannotManagePeer(t *testing.T) {
	repo := newFakeRepository()
	tenantID := int64(1)
	peer := repo.add(User{
		Email: "peer@x.com", Role: rbac.RoleOperationsManager,
		TenantID: &tenantID,
	})

	svc := NewService(repo)
	name := "New Name"

	_, err := svc.Update(
		context.Background(),
		tenantIdentity(99, tenantID, rbac.RoleOperationsManager),
		peer.ID,
		&UpdateUserRequest{FullName: &name},
	)
	assert.ErrorIs(t, err, ErrRoleNotAssignable)
}

func TestUpdateOtherTenantUserIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	tenantA, tenantB := int64(1), int64(2)
	other := repo.add(User{
		Email: "b@x.com", Role: rbac.RoleStaff, TenantID: &tenantB,
	})

	svc := NewService(repo)
	name := "New Name"

	_, err := svc.Update(
		context.Background(),
		tenantIdentity(99, tenantA, rbac.RoleOperatorAdmin),
		other.ID,
		&UpdateUserRequest{FullName: &name},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteSelfBlocked(t *testing.T) {
	repo := newFakeRepository()
	tenantID := int64(1)
	me := repo.add(User{
		Email: "me@x.com", Role: rbac.RoleOperatorAdmin,
		TenantID: &tenantID,
	})

	svc := NewService(repo)

	err := svc.Delete(
		context.Background(),
		tenantIdentity(me.ID, tenantID, rbac.RoleOperatorAdmin),
		me.ID,
	)
	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestDeleteLowerRoleSucceeds(t *testing.T) {
	repo := newFakeRepository()
	tenantID := int64(1)
	staff := repo.add(User{
		Email: "s@x.com", Role: rbac.RoleStaff, TenantID: &tenantID,
	})

	svc := NewService(repo)

	err := svc.Delete(
		context.Background(),
		tenantIdentity(99, tenantID, rbac.RoleOperatorAdmin),
		staff.ID,
	)
	require.NoError(t, err)

	_, err = svc.Get(
		context.Background(),
		tenantIdentity(99, tenantID, rbac.RoleOperatorAdmin),
		staff.ID,
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
