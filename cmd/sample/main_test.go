package main

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]config{
		"plain":      {rate: 1000, timeout: 2 * time.Second},
		"compressed": {rate: 1000, timeout: 2 * time.Second, compress: true},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, run(context.Background(), cfg))
		})
	}
}

func TestUsersAPI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServer(newUserStore()))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	api := newUsersAPI(newClient(srv.URL, reg, config{rate: 1000, timeout: time.Second}))
	ctx := context.Background()

	u, err := api.createUser(ctx, apiclient.Void{}, userInput{Name: "ada", Role: "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	role := "admin"
	list, err := api.listUsers(ctx, apiclient.Void{}, listQuery{Role: &role})
	require.NoError(t, err)
	require.Len(t, *list, 1)
	assert.Equal(t, "ada", (*list)[0].Name)

	none := "member"
	list, err = api.listUsers(ctx, apiclient.Void{}, listQuery{Role: &none})
	require.NoError(t, err)
	assert.Empty(t, *list)

	got, err := api.updateUser(ctx, userParams{ID: u.ID}, userInput{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)

	d, err := api.deleteUser(ctx, userParams{ID: u.ID}, apiclient.Void{})
	require.NoError(t, err)
	assert.True(t, d.Deleted)

	url, err := api.urls.user(userParams{ID: u.ID}, apiclient.Void{})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/v1/users/"+u.ID, url)

	const want = `
# HELP apiclient_requests_total Fetches performed, by method and outcome.
# TYPE apiclient_requests_total counter
apiclient_requests_total{method="delete",outcome="ok"} 1
apiclient_requests_total{method="get",outcome="ok"} 2
apiclient_requests_total{method="post",outcome="ok"} 1
apiclient_requests_total{method="put",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "apiclient_requests_total"))
}
