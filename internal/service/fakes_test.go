package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
)

// In-memory repositories mirroring the constraint behavior of the SQL layer:
// the same sentinel errors, the same uniqueness rules, the same conditional
// updates. Tests drive services against these instead of Postgres.

type fakeTripRepo struct {
	sessions map[string]*domain.TripSession
	scans    map[string]*domain.Scan
	// passengers lets ListScans resolve the joined rows
	passengers *fakePassengerRepo
}

func newFakeTripRepo(passengers *fakePassengerRepo) *fakeTripRepo {
	return &fakeTripRepo{
		sessions:   make(map[string]*domain.TripSession),
		scans:      make(map[string]*domain.Scan),
		passengers: passengers,
	}
}

func (f *fakeTripRepo) CreateSession(_ context.Context, session *domain.TripSession) error {
	for _, existing := range f.sessions {
		if existing.DriverID == session.DriverID && existing.Status == domain.TripStatusActive {
			return repository.ErrActiveTripExists
		}
	}
	session.ID = uuid.NewString()
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeTripRepo) GetSession(_ context.Context, id string) (*domain.TripSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeTripRepo) GetActiveSessionByDriver(_ context.Context, driverID string) (*domain.TripSession, error) {
	for _, session := range f.sessions {
		if session.DriverID == driverID && session.Status == domain.TripStatusActive {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTripRepo) CompleteSession(_ context.Context, id string, endedAt time.Time) (bool, error) {
	session, ok := f.sessions[id]
	if !ok || session.Status != domain.TripStatusActive {
		return false, nil
	}
	session.Status = domain.TripStatusCompleted
	session.EndedAt = &endedAt
	return true, nil
}

func (f *fakeTripRepo) InsertScan(_ context.Context, scan *domain.Scan) (bool, error) {
	for _, existing := range f.scans {
		if existing.TripSessionID == scan.TripSessionID && existing.PassengerID == scan.PassengerID {
			return false, nil
		}
	}
	scan.ID = uuid.NewString()
	copied := *scan
	f.scans[scan.ID] = &copied
	return true, nil
}

func (f *fakeTripRepo) ListScans(_ context.Context, sessionID string) ([]repository.ScanEntry, error) {
	var entries []repository.ScanEntry
	for _, scan := range f.scans {
		if scan.TripSessionID != sessionID {
			continue
		}
		entry := repository.ScanEntry{Scan: *scan}
		if passenger, ok := f.passengers.byID[scan.PassengerID]; ok {
			entry.Passenger = *passenger
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Scan.ScannedAt.Before(entries[j].Scan.ScannedAt)
	})
	return entries, nil
}

func (f *fakeTripRepo) scanCount(sessionID string) int {
	count := 0
	for _, scan := range f.scans {
		if scan.TripSessionID == sessionID {
			count++
		}
	}
	return count
}

type fakeRouteRepo struct {
	routes map[string]*domain.Route
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{routes: make(map[string]*domain.Route)}
}

func (f *fakeRouteRepo) Create(_ context.Context, route *domain.Route) error {
	route.ID = uuid.NewString()
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	copied := *route
	f.routes[route.ID] = &copied
	return nil
}

func (f *fakeRouteRepo) Update(_ context.Context, route *domain.Route) error {
	if _, ok := f.routes[route.ID]; !ok {
		return repository.ErrNotFound
	}
	route.UpdatedAt = time.Now()
	copied := *route
	f.routes[route.ID] = &copied
	return nil
}

func (f *fakeRouteRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.routes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.routes, id)
	return nil
}

func (f *fakeRouteRepo) GetByID(_ context.Context, id string) (*domain.Route, error) {
	route, ok := f.routes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *route
	return &copied, nil
}

func (f *fakeRouteRepo) ListByOperator(_ context.Context, operatorID string) ([]domain.Route, error) {
	var result []domain.Route
	for _, route := range f.routes {
		if route.OperatorID == operatorID {
			result = append(result, *route)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type fakePassengerRepo struct {
	byID     map[string]*domain.Passenger
	byQRCode map[string]string
	// insertion order drives created_at to keep keyset paging deterministic
	clock time.Time
}

func newFakePassengerRepo() *fakePassengerRepo {
	return &fakePassengerRepo{
		byID:     make(map[string]*domain.Passenger),
		byQRCode: make(map[string]string),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakePassengerRepo) Create(_ context.Context, passenger *domain.Passenger) error {
	if _, exists := f.byQRCode[passenger.QRCode]; exists {
		return repository.ErrDuplicateQRCode
	}
	passenger.ID = uuid.NewString()
	f.clock = f.clock.Add(time.Second)
	passenger.CreatedAt = f.clock
	copied := *passenger
	f.byID[passenger.ID] = &copied
	f.byQRCode[passenger.QRCode] = passenger.ID
	return nil
}

func (f *fakePassengerRepo) GetByID(_ context.Context, id string) (*domain.Passenger, error) {
	passenger, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *passenger
	return &copied, nil
}

func (f *fakePassengerRepo) GetByQRCode(_ context.Context, qrCode string) (*domain.Passenger, error) {
	id, ok := f.byQRCode[qrCode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakePassengerRepo) Archive(_ context.Context, id string, at time.Time) (*domain.Passenger, error) {
	passenger, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if passenger.ArchivedAt == nil {
		passenger.ArchivedAt = &at
	}
	copied := *passenger
	return &copied, nil
}

func (f *fakePassengerRepo) List(_ context.Context, filter repository.PassengerFilter) ([]domain.Passenger, error) {
	var all []domain.Passenger
	for _, passenger := range f.byID {
		if passenger.OperatorID != filter.OperatorID {
			continue
		}
		if !filter.IncludeArchived && passenger.ArchivedAt != nil {
			continue
		}
		all = append(all, *passenger)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if filter.Cursor != nil {
		filtered := all[:0]
		for _, passenger := range all {
			if passenger.CreatedAt.Before(filter.Cursor.CreatedAt) ||
				(passenger.CreatedAt.Equal(filter.Cursor.CreatedAt) && passenger.ID < filter.Cursor.ID) {
				filtered = append(filtered, passenger)
			}
		}
		all = filtered
	}
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, nil
}

type fakeOperatorRepo struct {
	operators map[string]*domain.Operator
	members   *fakeMemberRepo
}

func newFakeOperatorRepo(members *fakeMemberRepo) *fakeOperatorRepo {
	return &fakeOperatorRepo{operators: make(map[string]*domain.Operator), members: members}
}

func (f *fakeOperatorRepo) CreateWithOwner(ctx context.Context, operator *domain.Operator, founder *domain.Member) error {
	for _, existing := range f.operators {
		if existing.Slug == operator.Slug {
			return repository.ErrSlugTaken
		}
		if existing.OwnerUserID == operator.OwnerUserID {
			return repository.ErrOwnerHasOperator
		}
	}
	if _, err := f.members.GetByUserID(ctx, founder.UserID); err == nil {
		return repository.ErrAlreadyMember
	}
	operator.ID = uuid.NewString()
	operator.CreatedAt = time.Now()
	copied := *operator
	f.operators[operator.ID] = &copied

	founder.OperatorID = operator.ID
	return f.members.Create(ctx, founder)
}

func (f *fakeOperatorRepo) GetByID(_ context.Context, id string) (*domain.Operator, error) {
	operator, ok := f.operators[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *operator
	return &copied, nil
}

func (f *fakeOperatorRepo) GetBySlug(_ context.Context, slugValue string) (*domain.Operator, error) {
	for _, operator := range f.operators {
		if operator.Slug == slugValue {
			copied := *operator
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// seed inserts an operator directly, bypassing the owner transaction.
func (f *fakeOperatorRepo) seed(name string) *domain.Operator {
	operator := &domain.Operator{ID: uuid.NewString(), Name: name, Slug: name, CreatedAt: time.Now()}
	f.operators[operator.ID] = operator
	return operator
}

type fakeMemberRepo struct {
	members map[string]*domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*domain.Member)}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	for _, existing := range f.members {
		if existing.UserID == member.UserID {
			return repository.ErrAlreadyMember
		}
	}
	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (f *fakeMemberRepo) GetByUserID(_ context.Context, userID string) (*domain.Member, error) {
	for _, member := range f.members {
		if member.UserID == userID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMemberRepo) ListByOperator(_ context.Context, operatorID string) ([]domain.Member, error) {
	var result []domain.Member
	for _, member := range f.members {
		if member.OperatorID == operatorID {
			result = append(result, *member)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeMemberRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

type fakeInviteRepo struct {
	invites map[string]*domain.Invite
	members *fakeMemberRepo
}

func newFakeInviteRepo(members *fakeMemberRepo) *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*domain.Invite), members: members}
}

func (f *fakeInviteRepo) Create(_ context.Context, invite *domain.Invite) error {
	invite.ID = uuid.NewString()
	invite.CreatedAt = time.Now()
	copied := *invite
	f.invites[invite.ID] = &copied
	return nil
}

func (f *fakeInviteRepo) GetByToken(_ context.Context, token string) (*domain.Invite, error) {
	for _, invite := range f.invites {
		if invite.Token == token {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInviteRepo) Accept(ctx context.Context, inviteID string, usedAt time.Time, member *domain.Member) error {
	invite, ok := f.invites[inviteID]
	if !ok {
		return repository.ErrNotFound
	}
	if invite.UsedAt != nil {
		return repository.ErrInviteUsed
	}
	if err := f.members.Create(ctx, member); err != nil {
		return err
	}
	invite.UsedAt = &usedAt
	return nil
}
