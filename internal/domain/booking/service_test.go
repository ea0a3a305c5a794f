package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/domain/listing"
	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
	"github.com/churrasapp/churrasapp-api/internal/domain/user"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*Booking
	conflict bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *Booking) error {
	f.bookings[b.ID] = b
	return nil
}
func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}
func (f *fakeBookingRepo) ListForClient(ctx context.Context, clientProfileID uuid.UUID) ([]*BookingWithDetails, error) {
	var out []*BookingWithDetails
	for _, b := range f.bookings {
		if b.ClientID == clientProfileID {
			out = append(out, &BookingWithDetails{Booking: *b})
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) ListForProfessional(ctx context.Context, professionalProfileID uuid.UUID) ([]*BookingWithDetails, error) {
	var out []*BookingWithDetails
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalProfileID {
			out = append(out, &BookingWithDetails{Booking: *b})
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	if f.conflict {
		return ErrStatusConflict
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return ErrStatusConflict
	}
	b.Status = to
	return nil
}

type fakeProfileRepo struct {
	byUserID map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: map[uuid.UUID]*profile.Profile{}}
}

func (f *fakeProfileRepo) add(role user.Role) (userID uuid.UUID, profileID uuid.UUID) {
	userID = uuid.New()
	profileID = uuid.New()
	f.byUserID[userID] = &profile.Profile{ID: profileID, UserID: userID, Role: role}
	return userID, profileID
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	f.byUserID[p.UserID] = p
	return nil
}
func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	for _, p := range f.byUserID {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return f.byUserID[userID], nil
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *profile.Profile) error { return nil }
func (f *fakeProfileRepo) SetAvatar(ctx context.Context, id uuid.UUID, key, url string) error {
	return nil
}

type fakeListingRepo struct {
	listings map[uuid.UUID]*listing.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[uuid.UUID]*listing.Listing{}}
}

func (f *fakeListingRepo) add(professionalID uuid.UUID, maxGuests int) uuid.UUID {
	id := uuid.New()
	f.listings[id] = &listing.Listing{ID: id, ProfessionalID: professionalID, MaxGuests: maxGuests}
	return id
}

func (f *fakeListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	f.listings[l.ID] = l
	return nil
}
func (f *fakeListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return f.listings[id], nil
}
func (f *fakeListingRepo) ListAll(ctx context.Context) ([]*listing.ListingWithOwner, error) {
	return nil, nil
}
func (f *fakeListingRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*listing.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) Update(ctx context.Context, l *listing.Listing) error { return nil }
func (f *fakeListingRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, professionalID uuid.UUID) error {
	f.invalidated = append(f.invalidated, professionalID)
	return nil
}

type bookingFixture struct {
	svc            *Service
	repo           *fakeBookingRepo
	profiles       *fakeProfileRepo
	listings       *fakeListingRepo
	stats          *fakeInvalidator
	clientUser     uuid.UUID
	clientProfile  uuid.UUID
	proUser        uuid.UUID
	proProfile     uuid.UUID
	listingID      uuid.UUID
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		repo:     newFakeBookingRepo(),
		profiles: newFakeProfileRepo(),
		listings: newFakeListingRepo(),
		stats:    &fakeInvalidator{},
	}
	f.clientUser, f.clientProfile = f.profiles.add(user.RoleClient)
	f.proUser, f.proProfile = f.profiles.add(user.RoleProfessional)
	f.listingID = f.listings.add(f.proProfile, 50)
	f.svc = NewService(f.repo, f.profiles, f.listings, f.stats)
	return f
}

func (f *bookingFixture) createReq() *CreateRequest {
	return &CreateRequest{
		ServiceID:  f.listingID,
		EventDate:  "2026-10-10",
		EventTime:  "18:00",
		GuestCount: 30,
		Location:   "Vila Madalena",
		TotalPrice: 650,
	}
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture()

	b, err := f.svc.Create(context.Background(), f.clientUser, f.createReq())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if b.Status != StatusPending {
		t.Fatalf("new booking status = %s, want pending", b.Status)
	}
	if b.ClientID != f.clientProfile {
		t.Fatal("client_id must be the caller's profile")
	}
	if b.ProfessionalID != f.proProfile {
		t.Fatal("professional_id must come from the listing")
	}
	if got := b.EventDate.Format("2006-01-02"); got != "2026-10-10" {
		t.Fatalf("event date = %s, want 2026-10-10", got)
	}
}

func TestCreateBookingRejectsProfessional(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.Create(context.Background(), f.proUser, f.createReq())
	if err != ErrOnlyClientsCanBook {
		t.Fatalf("expected ErrOnlyClientsCanBook, got %v", err)
	}
}

func TestCreateBookingUnknownListing(t *testing.T) {
	f := newBookingFixture()

	req := f.createReq()
	req.ServiceID = uuid.New()
	_, err := f.svc.Create(context.Background(), f.clientUser, req)
	if err != ErrListingNotFound {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestCreateBookingGuestCountExceeded(t *testing.T) {
	f := newBookingFixture()

	req := f.createReq()
	req.GuestCount = 51
	_, err := f.svc.Create(context.Background(), f.clientUser, req)
	if err != ErrGuestCountExceeded {
		t.Fatalf("expected ErrGuestCountExceeded, got %v", err)
	}
}

func TestCreateBookingWithoutProfile(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), f.createReq())
	if err != ErrNoProfile {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newBookingFixture()

	b, err := f.svc.Create(context.Background(), f.clientUser, f.createReq())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Client must not confirm
	if _, err := f.svc.UpdateStatus(context.Background(), f.clientUser, b.ID, StatusConfirmed); err != ErrInvalidTransition {
		t.Fatalf("client confirm: expected ErrInvalidTransition, got %v", err)
	}

	// Professional confirms
	updated, err := f.svc.UpdateStatus(context.Background(), f.proUser, b.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", updated.Status)
	}

	// Professional completes
	updated, err = f.svc.UpdateStatus(context.Background(), f.proUser, b.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}

	// Terminal: nothing moves out of completed
	if _, err := f.svc.UpdateStatus(context.Background(), f.proUser, b.ID, StatusCancelled); err != ErrInvalidTransition {
		t.Fatalf("cancel completed: expected ErrInvalidTransition, got %v", err)
	}

	if len(f.stats.invalidated) != 2 {
		t.Fatalf("stats invalidated %d times, want 2", len(f.stats.invalidated))
	}
	for _, id := range f.stats.invalidated {
		if id != f.proProfile {
			t.Fatal("stats invalidation must target the professional profile")
		}
	}
}

func TestUpdateStatusClientCancels(t *testing.T) {
	f := newBookingFixture()

	b, _ := f.svc.Create(context.Background(), f.clientUser, f.createReq())

	updated, err := f.svc.UpdateStatus(context.Background(), f.clientUser, b.ID, StatusCancelled)
	if err != nil {
		t.Fatalf("client cancel failed: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", updated.Status)
	}
}

func TestUpdateStatusNotParty(t *testing.T) {
	f := newBookingFixture()

	b, _ := f.svc.Create(context.Background(), f.clientUser, f.createReq())

	strangerUser, _ := f.profiles.add(user.RoleProfessional)
	if _, err := f.svc.UpdateStatus(context.Background(), strangerUser, b.ID, StatusConfirmed); err != ErrNotBookingParty {
		t.Fatalf("expected ErrNotBookingParty, got %v", err)
	}
}

func TestUpdateStatusConflict(t *testing.T) {
	f := newBookingFixture()

	b, _ := f.svc.Create(context.Background(), f.clientUser, f.createReq())
	f.repo.conflict = true

	if _, err := f.svc.UpdateStatus(context.Background(), f.proUser, b.ID, StatusConfirmed); err != ErrStatusConflict {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if len(f.stats.invalidated) != 0 {
		t.Fatal("stats must not be invalidated on conflict")
	}
}

func TestGetByIDOnlyParties(t *testing.T) {
	f := newBookingFixture()

	b, _ := f.svc.Create(context.Background(), f.clientUser, f.createReq())

	if _, err := f.svc.GetByID(context.Background(), f.clientUser, b.ID); err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), f.proUser, b.ID); err != nil {
		t.Fatalf("professional read failed: %v", err)
	}

	strangerUser, _ := f.profiles.add(user.RoleClient)
	if _, err := f.svc.GetByID(context.Background(), strangerUser, b.ID); err != ErrNotBookingParty {
		t.Fatalf("expected ErrNotBookingParty, got %v", err)
	}
}

func TestListForCallerSplitsByRole(t *testing.T) {
	f := newBookingFixture()

	b, _ := f.svc.Create(context.Background(), f.clientUser, f.createReq())

	clientList, err := f.svc.ListForCaller(context.Background(), f.clientUser)
	if err != nil || len(clientList) != 1 || clientList[0].ID != b.ID {
		t.Fatalf("client list = %v (%v), want the one booking", clientList, err)
	}

	proList, err := f.svc.ListForCaller(context.Background(), f.proUser)
	if err != nil || len(proList) != 1 {
		t.Fatalf("professional list = %v (%v), want the one booking", proList, err)
	}

	otherUser, _ := f.profiles.add(user.RoleClient)
	otherList, err := f.svc.ListForCaller(context.Background(), otherUser)
	if err != nil || len(otherList) != 0 {
		t.Fatalf("other client list = %v (%v), want empty", otherList, err)
	}
}

func TestCreateBookingOwnListing(t *testing.T) {
	f := newBookingFixture()

	// A professional whose profile somehow carries the client role cannot
	// book their own listing either.
	ownerUser := uuid.New()
	f.profiles.byUserID[ownerUser] = &profile.Profile{ID: f.proProfile, UserID: ownerUser, Role: user.RoleClient}

	_, err := f.svc.Create(context.Background(), ownerUser, f.createReq())
	if err != ErrOwnListing {
		t.Fatalf("expected ErrOwnListing, got %v", err)
	}
}
