package service

import (
	"context"
	"sync"
	"time"

	"campus-hub/internal/models"
	"campus-hub/internal/repository"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles []*models.Profile
	follows  map[[2]uuid.UUID]bool
}

func newFakeProfiles(ps ...*models.Profile) *fakeProfiles {
	return &fakeProfiles{profiles: ps, follows: map[[2]uuid.UUID]bool{}}
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfiles) UpdateAcademic(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.profiles {
		if existing.ID == p.ID {
			cp := *p
			f.profiles[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProfiles) Search(context.Context, repository.ProfileFilter) ([]*models.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfiles) Follow(_ context.Context, follower, followee uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.follows[[2]uuid.UUID{follower, followee}] = true
	return nil
}

func (f *fakeProfiles) Unfollow(_ context.Context, follower, followee uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.follows, [2]uuid.UUID{follower, followee})
	return nil
}

// Candidates returns every other profile; ordering is left to scoring.
func (f *fakeProfiles) Candidates(_ context.Context, self *models.Profile, limit int) ([]*models.Profile, error) {
	var out []*models.Profile
	for _, p := range f.profiles {
		if p.ID != self.ID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

type publishedEvent struct {
	subject   string
	eventType string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(subject, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{subject, eventType})
	return nil
}

type fakeListings struct {
	items []*models.Listing
}

func (f *fakeListings) Create(_ context.Context, l *models.Listing) error {
	f.items = append(f.items, l)
	return nil
}

func (f *fakeListings) GetByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	for _, l := range f.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeListings) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, id := range ids {
		if l, err := f.GetByID(context.Background(), id); err == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListings) List(context.Context, repository.ListingFilter) ([]*models.Listing, error) {
	return f.items, nil
}

func (f *fakeListings) Delete(_ context.Context, id, sellerID uuid.UUID) error {
	for i, l := range f.items {
		if l.ID == id && l.SellerID == sellerID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMessages struct {
	convs    []*models.Conversation
	messages []*models.Message
}

func (f *fakeMessages) GetOrCreateConversation(_ context.Context, from, to uuid.UUID, listingID *uuid.UUID) (*models.Conversation, error) {
	a, b := repository.OrderedPair(from, to)
	for _, c := range f.convs {
		if c.MemberA == a && c.MemberB == b {
			return c, nil
		}
	}
	c := &models.Conversation{ID: uuid.New(), MemberA: a, MemberB: b, ListingID: listingID, CreatedAt: time.Now()}
	f.convs = append(f.convs, c)
	return c, nil
}

func (f *fakeMessages) GetConversation(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	for _, c := range f.convs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMessages) ListConversations(_ context.Context, profileID uuid.UUID) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, c := range f.convs {
		if c.Has(profileID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeMessages) CreateMessage(_ context.Context, m *models.Message) error {
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessages) ListMessages(_ context.Context, conversationID uuid.UUID, _ time.Time, limit int) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func newProfile(mut func(*models.Profile)) *models.Profile {
	p := &models.Profile{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		FullName:          "Student",
		IsVerifiedStudent: true,
		CreatedAt:         time.Now(),
	}
	if mut != nil {
		mut(p)
	}
	return p
}
