package cart

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestSigner(now time.Time) (*Signer, *time.Time) {
	clock := now
	s := NewSigner(testSecret)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestSigner_CreateAndValidate(t *testing.T) {
	s, _ := newTestSigner(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	session, err := s.Create([]Item{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Len(t, session.Signature, 64)
	assert.Equal(t, session.CreatedAt, session.UpdatedAt)
	assert.NoError(t, s.Validate(session))
	assert.True(t, s.Valid(session))
}

func TestSigner_Tamper(t *testing.T) {
	s, _ := newTestSigner(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	session, err := s.Create([]Item{{ProductID: 1, Quantity: 2}, {ProductID: 7, Quantity: 1}})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		tamper func(s *Session)
	}{
		{name: "quantity raised", tamper: func(s *Session) { s.Items[0].Quantity = 9 }},
		{name: "product swapped", tamper: func(s *Session) { s.Items[1].ProductID = 8 }},
		{name: "session id changed", tamper: func(s *Session) { s.SessionID = s.SessionID + "x" }},
		{name: "timestamp changed", tamper: func(s *Session) { s.UpdatedAt++ }},
		{name: "signature byte flipped", tamper: func(s *Session) {
			b := []byte(s.Signature)
			if b[0] == 'a' {
				b[0] = 'b'
			} else {
				b[0] = 'a'
			}
			s.Signature = string(b)
		}},
		{name: "signature not hex", tamper: func(s *Session) { s.Signature = "zz" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			forged := session
			forged.Items = cloneItems(session.Items)
			tc.tamper(&forged)

			assert.ErrorIs(t, s.Validate(forged), ErrInvalidSignature)
		})
	}
}

func TestSigner_OtherSecretRejected(t *testing.T) {
	s, _ := newTestSigner(time.Now())
	session, err := s.Create([]Item{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	other := NewSigner("another-secret-another-secret-123")
	assert.ErrorIs(t, other.Validate(session), ErrInvalidSignature)
}

func TestSigner_Expiry(t *testing.T) {
	s, clock := newTestSigner(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	session, err := s.Create([]Item{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	*clock = clock.Add(23 * time.Hour)
	updated, err := s.Add(&session, 1, 1)
	require.NoError(t, err)
	assert.NoError(t, s.Validate(updated))

	// Expiry counts from creation, not from the last update.
	*clock = clock.Add(2 * time.Hour)
	assert.ErrorIs(t, s.Validate(updated), ErrExpired)
}

func TestSigner_Limits(t *testing.T) {
	s, _ := newTestSigner(time.Now())

	t.Run("per product limit", func(t *testing.T) {
		session, err := s.Create([]Item{{ProductID: 1, Quantity: 8}})
		require.NoError(t, err)
		before := session

		_, err = s.Add(&session, 1, 3)
		assert.ErrorIs(t, err, ErrProductLimit)
		assert.Equal(t, before, session)
		assert.Equal(t, 8, session.Quantity(1))
	})

	t.Run("cart total limit", func(t *testing.T) {
		items := make([]Item, 0, 5)
		for id := int64(1); id <= 5; id++ {
			items = append(items, Item{ProductID: id, Quantity: 10})
		}
		session, err := s.Create(items)
		require.NoError(t, err)
		assert.Equal(t, 50, session.TotalQuantity())

		_, err = s.Add(&session, 6, 1)
		assert.ErrorIs(t, err, ErrCartLimit)
		assert.Len(t, session.Items, 5)
		assert.NoError(t, s.Validate(session))
	})

	t.Run("create over limit", func(t *testing.T) {
		_, err := s.Create([]Item{{ProductID: 1, Quantity: 11}})
		assert.ErrorIs(t, err, ErrProductLimit)
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := s.Add(nil, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestSigner_Mutations(t *testing.T) {
	s, clock := newTestSigner(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	session, err := s.Add(nil, 3, 2)
	require.NoError(t, err)
	*clock = clock.Add(time.Minute)

	session, err = s.Add(&session, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, session.TotalQuantity())
	assert.Greater(t, session.UpdatedAt, session.CreatedAt)

	session, err = s.SetQuantity(session, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, session.Quantity(3))

	session, err = s.SetQuantity(session, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, session.Quantity(4))
	assert.Len(t, session.Items, 1)

	session, err = s.Remove(session, 3)
	require.NoError(t, err)
	assert.Empty(t, session.Items)
	assert.NoError(t, s.Validate(session))
}

func TestCookieStore(t *testing.T) {
	s, _ := newTestSigner(time.Now())
	store := NewCookieStore(s, true)

	session, err := s.Create([]Item{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, store.Save(rec, session))

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		got, err := store.Load(httptest.NewRecorder(), req)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, session, *got)
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		got, err := store.Load(httptest.NewRecorder(), req)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("forged cookie is cleared", func(t *testing.T) {
		forged := session
		forged.Items = []Item{{ProductID: 1, Quantity: 10}}
		value, err := Encode(forged)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
		rec := httptest.NewRecorder()

		got, err := store.Load(rec, req)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.Nil(t, got)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("garbage cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!"})
		rec := httptest.NewRecorder()

		got, err := store.Load(rec, req)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Nil(t, got)
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}
