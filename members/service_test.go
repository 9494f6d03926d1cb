package members_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/utils"
	"github.com/connecthub/connecthub-go/members"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.Handler) *members.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := httpclient.New(server.URL)
	require.NoError(t, err)
	service, err := members.NewService(client)
	require.NoError(t, err)
	return service
}

func TestList_DecodesMembersAndQuery(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Ann","email":"ann@example.com","active":true},{"id":2,"name":"Ben","email":"ben@example.com","active":false}]}`))
	})

	service := newService(t, mux)
	got, err := service.List(context.Background(), members.ListOptions{Page: 2, Search: "an"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Ann", got[0].Name)
	assert.True(t, got[0].Active)
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "search=an")
}

func TestGet_SurfacesNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"No such member"}`))
	})

	service := newService(t, mux)
	_, err := service.Get(context.Background(), 99)
	require.Error(t, err)

	reqErr, ok := httpclient.AsRequestError(err)
	require.True(t, ok)
	assert.True(t, reqErr.IsStatus(http.StatusNotFound))
}

func TestCreate_ValidatesBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"name":"Cat","email":"cat@example.com","active":true}}`))
	})

	service := newService(t, mux)

	_, err := service.Create(context.Background(), members.CreateMemberRequest{Name: "Cat", Email: "not-an-email"})
	require.Error(t, err)
	assert.Zero(t, calls.Load())

	created, err := service.Create(context.Background(), members.CreateMemberRequest{Name: "Cat", Email: "cat@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpdate_SendsOnlyChangedFields(t *testing.T) {
	var gotBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/members/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"name":"Ann Smith","email":"ann@example.com","active":true}}`))
	})

	service := newService(t, mux)
	updated, err := service.Update(context.Background(), 1, members.UpdateMemberRequest{
		Name: utils.Ptr("Ann Smith"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", updated.Name)
	assert.JSONEq(t, `{"name":"Ann Smith"}`, string(gotBody))
}

func TestRoleInfo_NotFoundMeansFeatureAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/1/role", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Not found"}`))
	})

	service := newService(t, mux)
	info, err := service.RoleInfo(context.Background(), 1)
	require.NoError(t, err, "a 404 from the role endpoint is not an error")
	assert.Nil(t, info)
}

func TestRoleInfo_OtherStatusesStillSurface(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/1/role", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"error":"Not allowed"}`))
	})

	service := newService(t, mux)
	_, err := service.RoleInfo(context.Background(), 1)
	require.Error(t, err)

	reqErr, ok := httpclient.AsRequestError(err)
	require.True(t, ok)
	assert.True(t, reqErr.IsStatus(http.StatusForbidden))
}

func TestRoleInfo_SuccessDecodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/1/role", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"role":"president","permissions":["manage_members"]}}`))
	})

	service := newService(t, mux)
	info, err := service.RoleInfo(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "president", info.Role)
	assert.Equal(t, []string{"manage_members"}, info.Permissions)
}
