package discriminator

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

func TestMiddlewareBindsPerRequest(t *testing.T) {
	table, err := NewTable(testConfig())
	require.NoError(t, err)

	session := &mockSession{}
	session.On("Get", SessionName).Return(string(anotherUserClass), true)

	var seen []*Discriminator
	handler := Middleware(table, testCatalog(), func(r *http.Request) SessionStore {
		return session
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, anotherUserClass, d.Class())
		seen = append(seen, d)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	session.AssertNumberOfCalls(t, "Get", 2)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestFromRequest(t *testing.T) {
	_, err := FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInternal))

	table, err := NewTable(testConfig())
	require.NoError(t, err)
	d := table.Bind(nil, testCatalog())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	got, err := FromRequest(r.WithContext(NewContext(r.Context(), d)))
	require.NoError(t, err)
	assert.Same(t, d, got)
}

func TestSelectByKey(t *testing.T) {
	table, err := NewTable(testConfig())
	require.NoError(t, err)

	session := &mockSession{}
	session.On("Set", SessionName, string(anotherUserClass)).Return()
	d := table.Bind(session, testCatalog())

	desc, err := SelectByKey(d, "user_two")
	require.NoError(t, err)
	assert.Equal(t, anotherUserClass, desc.Class)
	assert.Equal(t, anotherUserClass, d.Class())
	session.AssertNumberOfCalls(t, "Set", 1)

	_, err = SelectByKey(d, "stub.User")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownUserClass))
	assert.Equal(t, anotherUserClass, d.Class())
	session.AssertNumberOfCalls(t, "Set", 1)
}
