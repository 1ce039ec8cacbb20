package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/domain/user"
)

type fakeRepo struct {
	users []*user.User
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, u *user.User) error {
	for i, existing := range f.users {
		if existing.ID == u.ID {
			f.users[i] = u
			return nil
		}
	}
	return errors.New("missing user")
}

func (f *fakeRepo) List(_ context.Context, filter authz.Filter) ([]*user.User, error) {
	if filter.None {
		return []*user.User{}, nil
	}
	var out []*user.User
	for _, u := range f.users {
		switch {
		case filter.All:
			out = append(out, u)
		case filter.OperatorID.Valid:
			if u.OperatorID.Valid && u.OperatorID.UUID == filter.OperatorID.UUID {
				out = append(out, u)
			}
		case filter.OutletID.Valid:
			if u.OutletID.Valid && u.OutletID.UUID == filter.OutletID.UUID {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) LoadIdentity(context.Context, uuid.UUID) (*authz.Identity, error) {
	return nil, nil
}

type fakeRoles struct {
	names map[uuid.UUID]string
}

func (f *fakeRoles) GetRoleName(_ context.Context, roleID uuid.UUID) (string, error) {
	return f.names[roleID], nil
}

type fakeOutlets struct {
	operators map[uuid.UUID]uuid.UUID
}

func (f *fakeOutlets) OperatorOf(_ context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error) {
	op, ok := f.operators[outletID]
	if !ok {
		return uuid.NullUUID{}, false, nil
	}
	return uuid.NullUUID{UUID: op, Valid: true}, true, nil
}

type fixture struct {
	svc     *user.Service
	repo    *fakeRepo
	roleIDs map[string]uuid.UUID
	outlets *fakeOutlets
}

func newFixture() *fixture {
	roleIDs := map[string]uuid.UUID{}
	names := map[uuid.UUID]string{}
	for _, name := range []string{"Admin", "Operator", "Area Mgr", "Store Mgr", "Cashier"} {
		id := uuid.New()
		roleIDs[name] = id
		names[id] = name
	}

	repo := &fakeRepo{}
	outlets := &fakeOutlets{operators: map[uuid.UUID]uuid.UUID{}}
	return &fixture{
		svc:     user.NewService(repo, &fakeRoles{names: names}, outlets),
		repo:    repo,
		roleIDs: roleIDs,
		outlets: outlets,
	}
}

func storeManager(outletID, operatorID uuid.UUID) *authz.Identity {
	return &authz.Identity{
		UserID:     uuid.New(),
		Username:   "manager",
		Role:       authz.RoleStoreManager,
		OperatorID: uuid.NullUUID{UUID: operatorID, Valid: true},
		OutletID:   uuid.NullUUID{UUID: outletID, Valid: true},
	}
}

func TestStoreManagerCannotCreateOperator(t *testing.T) {
	fx := newFixture()
	identity := storeManager(uuid.New(), uuid.New())

	roleID := fx.roleIDs["Operator"]
	_, err := fx.svc.Create(context.Background(), identity, &user.CreateUserRequest{
		Username: "newop",
		Password: "secret",
		RoleID:   roleID,
	})

	var lg *authz.LevelGuardError
	if !errors.As(err, &lg) {
		t.Fatalf("expected LevelGuardError, got %v", err)
	}
	if lg.Creator != authz.RoleStoreManager || lg.Target != authz.RoleOperator {
		t.Fatalf("guard error should name both roles, got %+v", lg)
	}
	if len(fx.repo.users) != 0 {
		t.Fatal("no user should be created on a level guard violation")
	}
}

func TestStoreManagerCreatesCashierWithForcedAffiliation(t *testing.T) {
	fx := newFixture()
	outletID := uuid.New()
	operatorID := uuid.New()
	identity := storeManager(outletID, operatorID)

	// The request tries to place the cashier somewhere else entirely.
	foreignOutlet := uuid.New()
	u, err := fx.svc.Create(context.Background(), identity, &user.CreateUserRequest{
		Username: "till1",
		Password: "secret",
		RoleID:   fx.roleIDs["Cashier"],
		OutletID: &foreignOutlet,
	})
	if err != nil {
		t.Fatalf("create cashier: %v", err)
	}

	if !u.OutletID.Valid || u.OutletID.UUID != outletID {
		t.Fatalf("outlet must be force-locked to the creator's own, got %v", u.OutletID)
	}
	if !u.OperatorID.Valid || u.OperatorID.UUID != operatorID {
		t.Fatalf("operator must be inherited from the creator, got %v", u.OperatorID)
	}
}

func TestOperatorOutletMustBeInScope(t *testing.T) {
	fx := newFixture()
	operatorID := uuid.New()
	identity := &authz.Identity{
		UserID:     uuid.New(),
		Username:   "op1",
		Role:       authz.RoleOperator,
		OperatorID: uuid.NullUUID{UUID: operatorID, Valid: true},
	}

	// Outlet owned by a different operator.
	foreignOutlet := uuid.New()
	fx.outlets.operators[foreignOutlet] = uuid.New()

	_, err := fx.svc.Create(context.Background(), identity, &user.CreateUserRequest{
		Username: "cashier2",
		Password: "secret",
		RoleID:   fx.roleIDs["Cashier"],
		OutletID: &foreignOutlet,
	})
	if !authz.IsScopeGuard(err) {
		t.Fatalf("expected scope guard violation, got %v", err)
	}

	// Outlet in scope works, and the operator affiliation is forced.
	ownOutlet := uuid.New()
	fx.outlets.operators[ownOutlet] = operatorID

	u, err := fx.svc.Create(context.Background(), identity, &user.CreateUserRequest{
		Username: "cashier3",
		Password: "secret",
		RoleID:   fx.roleIDs["Cashier"],
		OutletID: &ownOutlet,
	})
	if err != nil {
		t.Fatalf("create in-scope cashier: %v", err)
	}
	if !u.OperatorID.Valid || u.OperatorID.UUID != operatorID {
		t.Fatalf("operator affiliation must be forced to the caller's own, got %v", u.OperatorID)
	}
}

func TestOperatorListsOnlyOwnUsers(t *testing.T) {
	fx := newFixture()
	mine := uuid.New()
	other := uuid.New()

	add := func(name string, operatorID uuid.UUID) {
		fx.repo.users = append(fx.repo.users, &user.User{
			ID:         uuid.New(),
			Username:   name,
			OperatorID: uuid.NullUUID{UUID: operatorID, Valid: true},
		})
	}
	add("mine-1", mine)
	add("mine-2", mine)
	add("theirs-1", other)

	identity := &authz.Identity{
		UserID:     uuid.New(),
		Role:       authz.RoleOperator,
		OperatorID: uuid.NullUUID{UUID: mine, Valid: true},
	}

	users, err := fx.svc.List(context.Background(), identity)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users in scope, got %d", len(users))
	}
	for _, u := range users {
		if u.OperatorID.UUID != mine {
			t.Fatalf("row outside caller's operator scope leaked: %s", u.Username)
		}
	}
}

func TestUpdateOutOfScopeUser(t *testing.T) {
	fx := newFixture()
	myOutlet := uuid.New()
	identity := storeManager(myOutlet, uuid.New())

	target := &user.User{
		ID:       uuid.New(),
		Username: "elsewhere",
		RoleID:   fx.roleIDs["Cashier"],
		OutletID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	}
	fx.repo.users = append(fx.repo.users, target)

	_, err := fx.svc.Update(context.Background(), identity, target.ID, &user.UpdateUserRequest{
		Username: "elsewhere",
		RoleID:   fx.roleIDs["Cashier"],
	})
	if !authz.IsScopeGuard(err) {
		t.Fatalf("expected scope guard violation for out-of-scope direct-ID update, got %v", err)
	}
}

func TestDuplicateUsernameConflict(t *testing.T) {
	fx := newFixture()
	identity := &authz.Identity{
		UserID:   uuid.New(),
		Username: "root",
		Role:     authz.RoleAdmin,
	}

	req := &user.CreateUserRequest{
		Username: "dup",
		Password: "secret",
		RoleID:   fx.roleIDs["Cashier"],
	}
	if _, err := fx.svc.Create(context.Background(), identity, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := fx.svc.Create(context.Background(), identity, req); !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
